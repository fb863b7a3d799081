package ports

import "poi-distance-service/internal/domain"

// Spherical-geometry capability used by the distance engine.
type SphericalGeometry interface {
	// Return the great-circle surface distance in meters.
	DistanceBetween(from, to domain.Coordinates) float64
}
