package view

import (
	"poi-distance-service/internal/distance"
	"poi-distance-service/internal/domain"
)

const (
	UserMarkerKey   = "current-location"
	UserMarkerLabel = "You are here"
	UserMarkerIcon  = "http://maps.google.com/mapfiles/ms/icons/blue-dot.png"
)

// Advanced-marker pin colors.
type PinStyle struct {
	Background  string  `json:"background"`
	GlyphColor  string  `json:"glyph_color"`
	BorderColor string  `json:"border_color"`
	Scale       float64 `json:"scale,omitempty"`
}

var (
	poiPin  = PinStyle{Background: "#FBBC04", GlyphColor: "#000000", BorderColor: "#000000"}
	userPin = PinStyle{Background: "#4285F4", GlyphColor: "#FFFFFF", BorderColor: "#1A73E8", Scale: 1.2}
)

// A marker descriptor handed to the map widget.
type Marker struct {
	Key      string             `json:"key"`
	Label    string             `json:"label"`
	Position domain.Coordinates `json:"position"`
	Icon     string             `json:"icon,omitempty"`
	Pin      *PinStyle          `json:"pin,omitempty"`
	Current  bool               `json:"current"`
}

// Scene is everything the map widget needs to draw one view.
type Scene struct {
	ViewID     string             `json:"view_id"`
	State      domain.ViewState   `json:"state"`
	Style      domain.MarkerStyle `json:"style"`
	Reason     string             `json:"reason,omitempty"`
	Map        MapOptions         `json:"map"`
	Markers    []Marker           `json:"markers"`
	UserMarker *Marker            `json:"user_marker"`
	Distances  []distance.Line    `json:"distances"`
}

// BuildScene places one marker per point of interest in registry order,
// the user marker when a location is known, and one distance line per
// computed distance.
func BuildScene(pois []domain.PointOfInterest, snap Snapshot, opts Options) Scene {
	sc := Scene{
		ViewID:    snap.ID,
		State:     snap.State,
		Style:     opts.Style,
		Reason:    string(snap.Reason),
		Map:       opts.Map,
		Markers:   make([]Marker, 0, len(pois)),
		Distances: []distance.Line{},
	}

	for _, p := range pois {
		m := Marker{
			Key:      p.Key,
			Label:    p.DisplayLabel(),
			Position: p.Location,
		}
		if opts.Style == domain.MarkerStylePin {
			pin := poiPin
			m.Pin = &pin
		}
		sc.Markers = append(sc.Markers, m)
	}

	if snap.UserLocation == nil {
		return sc
	}

	user := Marker{
		Key:      UserMarkerKey,
		Label:    UserMarkerLabel,
		Position: *snap.UserLocation,
		Current:  true,
	}
	if opts.Style == domain.MarkerStylePin {
		pin := userPin
		user.Pin = &pin
	} else {
		user.Icon = UserMarkerIcon
	}
	sc.UserMarker = &user
	sc.Distances = distance.Lines(pois, snap.Distances)

	return sc
}
