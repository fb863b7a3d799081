package geometry

import (
	"poi-distance-service/internal/domain"

	"github.com/golang/geo/s2"
)

// Mean Earth radius of the spherical model, in meters.
const EarthRadiusMeters = 6371000.0

// S2 measures great-circle distance as the s2 angular distance scaled by
// the Earth radius.
type S2 struct {
	Radius float64
}

func NewS2() *S2 {
	return &S2{Radius: EarthRadiusMeters}
}

func (g *S2) DistanceBetween(from, to domain.Coordinates) float64 {
	a := s2.LatLngFromDegrees(from.Lat, from.Lng)
	b := s2.LatLngFromDegrees(to.Lat, to.Lng)
	return a.Distance(b).Radians() * radiusOr(g.Radius)
}

func radiusOr(r float64) float64 {
	if r <= 0 {
		return EarthRadiusMeters
	}
	return r
}
