package ports

import (
	"context"
	"poi-distance-service/internal/domain"
)

// Port: a boundary for loading the point-of-interest registry at startup.
type POISource interface {
	// Return every point of interest in display order.
	ListPOIs(ctx context.Context) ([]domain.PointOfInterest, error)
}
