package locator

import (
	"context"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/ports"
	"time"
)

// Static reports a fixed position, for hosts that know where they are.
type Static struct {
	pos ports.Position
}

func NewStatic(c domain.Coordinates) *Static {
	return &Static{pos: ports.Position{Coordinates: c}}
}

func (s *Static) CurrentPosition(ctx context.Context) (ports.Position, error) {
	if err := ctx.Err(); err != nil {
		return ports.Position{}, ports.NewLocationError(ports.ReasonTimeout, err.Error())
	}

	pos := s.pos
	pos.Timestamp = time.Now()
	return pos, nil
}

// Unsupported models a host without any location capability.
type Unsupported struct{}

func (Unsupported) CurrentPosition(context.Context) (ports.Position, error) {
	return ports.Position{}, ports.NewLocationError(ports.ReasonUnsupported, "host has no location service")
}
