package api

import (
	"context"
	"log"
	"poi-distance-service/internal/platform/obs"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestID tags each request context so obs timings can be correlated
// with the access log line.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), obs.RequestIDKey, id))
		c.Next()
	}
}

// accessLog logs end-to-end request duration and response size for basic observability.
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Milliseconds()
		bytes := c.Writer.Size()
		if bytes < 0 {
			bytes = 0
		}

		reqID, _ := c.Request.Context().Value(obs.RequestIDKey).(string)
		log.Printf(
			"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
			reqID, c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), bytes, duration,
		)
	}
}
