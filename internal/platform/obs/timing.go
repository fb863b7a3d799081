package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "req_id"
	ViewIDKey    ctxKey = "view_id"
)

// WithViewID tags ctx so timings logged below it carry the view id.
func WithViewID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ViewIDKey, id)
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)
	viewID, _ := ctx.Value(ViewIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s view_id=%s op=%s dur=%dms err=%v", reqID, viewID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s view_id=%s op=%s dur=%dms", reqID, viewID, name, dur.Milliseconds())
	}
}
