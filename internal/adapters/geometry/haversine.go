package geometry

import (
	"math"
	"poi-distance-service/internal/domain"
)

// Haversine is the closed-form spherical distance on the same sphere as S2.
type Haversine struct {
	Radius float64
}

func NewHaversine() *Haversine {
	return &Haversine{Radius: EarthRadiusMeters}
}

func (h *Haversine) DistanceBetween(from, to domain.Coordinates) float64 {
	return HaversineMeters(from, to, radiusOr(h.Radius))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// HaversineMeters computes the distance between two points in meters.
func HaversineMeters(from, to domain.Coordinates, radius float64) float64 {
	lat1Rad := toRadians(from.Lat)
	lat2Rad := toRadians(to.Lat)

	dLat := lat2Rad - lat1Rad
	dLon := toRadians(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radius * c
}
