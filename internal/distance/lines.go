package distance

import (
	"fmt"
	"poi-distance-service/internal/domain"
)

// A display line for one computed distance.
type Line struct {
	Key        string  `json:"key"`
	Meters     float64 `json:"meters"`
	Kilometers string  `json:"kilometers"`
	Text       string  `json:"text"`
}

func FormatLine(key string, meters float64) string {
	return fmt.Sprintf("Distance to %s: %s km", key, domain.FormatKilometers(meters))
}

// Lines renders d in registry order. Points without a computed distance
// are skipped.
func Lines(pois []domain.PointOfInterest, d domain.Distances) []Line {
	out := make([]Line, 0, len(d))
	for _, p := range pois {
		m, ok := d[p.Key]
		if !ok {
			continue
		}
		out = append(out, Line{
			Key:        p.Key,
			Meters:     m,
			Kilometers: domain.FormatKilometers(m),
			Text:       FormatLine(p.Key, m),
		})
	}
	return out
}
