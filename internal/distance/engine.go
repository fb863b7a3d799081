package distance

import (
	"errors"
	"fmt"
	"math"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/ports"
)

// ErrGeometryUnavailable is returned when no spherical-geometry capability
// is loaded. Callers skip the computation for that cycle.
var ErrGeometryUnavailable = errors.New("spherical geometry not loaded")

// Compute returns the great-circle distance in meters from user to every
// point of interest. It is a pure function of its inputs and never returns
// a partial result.
func Compute(
	g ports.SphericalGeometry,
	user domain.Coordinates,
	pois []domain.PointOfInterest,
) (domain.Distances, error) {
	if g == nil {
		return nil, ErrGeometryUnavailable
	}

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("compute distances: user location: %w", err)
	}

	out := make(domain.Distances, len(pois))
	for _, p := range pois {
		d := g.DistanceBetween(user, p.Location)
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return nil, fmt.Errorf("compute distances: invalid distance %v to %q", d, p.Key)
		}
		out[p.Key] = d
	}

	return out, nil
}
