package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(c *gin.Context, v any) error {
	return decode(c, v, false)
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func decodeOptionalJSON(c *gin.Context, v any) error {
	return decode(c, v, true)
}

func decode(c *gin.Context, v any, optional bool) error {
	if c.Request.Body == nil {
		if optional {
			return nil
		}
		return errors.New("request body is required")
	}

	dec := json.NewDecoder(c.Request.Body)
	defer c.Request.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if optional && err == io.EOF {
			return nil
		}
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
