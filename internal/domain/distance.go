package domain

import (
	"math"
	"strconv"
)

// Distances maps a PointOfInterest key to its great-circle distance
// from the user in meters. Values keep full precision; rounding only
// happens when a distance is formatted for display.
type Distances map[string]float64

func (d Distances) Clone() Distances {
	if d == nil {
		return nil
	}

	out := make(Distances, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Kilometers converts meters to kilometers rounded to two decimals,
// halves away from zero (111194.93 m -> 111.19 km).
func Kilometers(meters float64) float64 {
	return math.Round(meters/10) / 100
}

// FormatKilometers renders meters as a two-decimal kilometer string.
func FormatKilometers(meters float64) string {
	return strconv.FormatFloat(Kilometers(meters), 'f', 2, 64)
}
