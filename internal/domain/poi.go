package domain

// Represents a named, fixed geographic location shown on the map.
// A PointOfInterest is identified by a unique Key within its registry
// and is never mutated after the registry is built.
type PointOfInterest struct {
	Key      string      `json:"key"`
	Location Coordinates `json:"location"`
	Label    string      `json:"label,omitempty"`
}

// DisplayLabel returns the marker label, falling back to the key.
func (p PointOfInterest) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Key
}
