package locator

import (
	"context"
	"errors"
	"poi-distance-service/internal/ports"
	"sync"
)

type outcome struct {
	pos ports.Position
	err error
}

// Reported is a Locator fed by a client that owns the real location
// service, typically the browser page calling navigator.geolocation.
//
// Exactly one outcome is accepted; later reports are ignored. The
// outcome is buffered so a report that arrives before CurrentPosition
// is called is not lost.
type Reported struct {
	once sync.Once
	ch   chan outcome
}

func NewReported() *Reported {
	return &Reported{ch: make(chan outcome, 1)}
}

// Report delivers a successful reading. It returns false if an outcome
// was already delivered.
func (r *Reported) Report(pos ports.Position) bool {
	return r.deliver(outcome{pos: pos})
}

// Fail delivers a failed acquisition. It returns false if an outcome
// was already delivered.
func (r *Reported) Fail(err error) bool {
	if err == nil {
		err = ports.ErrPositionUnavailable
	}
	return r.deliver(outcome{err: err})
}

func (r *Reported) deliver(o outcome) bool {
	delivered := false
	r.once.Do(func() {
		r.ch <- o
		delivered = true
	})
	return delivered
}

func (r *Reported) CurrentPosition(ctx context.Context) (ports.Position, error) {
	select {
	case o := <-r.ch:
		return o.pos, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ports.Position{}, ports.NewLocationError(ports.ReasonTimeout, "no position reported before deadline")
		}
		return ports.Position{}, ctx.Err()
	}
}
