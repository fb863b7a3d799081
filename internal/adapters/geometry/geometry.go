package geometry

import (
	"fmt"
	"poi-distance-service/internal/ports"
	"strings"
)

// New selects a geometry backend by name: "s2" (default), "haversine",
// or "none". "none" returns a nil geometry, which the distance engine
// treats as a capability that has not loaded.
func New(name string) (ports.SphericalGeometry, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "s2":
		return NewS2(), nil
	case "haversine":
		return NewHaversine(), nil
	case "none", "off":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown geometry %q (want s2, haversine or none)", name)
	}
}
