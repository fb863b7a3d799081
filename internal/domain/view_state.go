package domain

import (
	"fmt"
	"strings"
)

// Lifecycle of a location distance view.
//
//	Uninitialized -> AwaitingLocation -> LocationResolved | LocationUnavailable
//
// The two location states are terminal: acquisition is single-shot.
type ViewState string

const (
	StateUninitialized       ViewState = "uninitialized"
	StateAwaitingLocation    ViewState = "awaiting_location"
	StateLocationResolved    ViewState = "location_resolved"
	StateLocationUnavailable ViewState = "location_unavailable"
)

func (s ViewState) Terminal() bool {
	return s == StateLocationResolved || s == StateLocationUnavailable
}

// Rendering style for map markers.
type MarkerStyle string

const (
	MarkerStylePlain MarkerStyle = "plain"
	MarkerStylePin   MarkerStyle = "pin"
)

// ParseMarkerStyle accepts "plain", "pin" and "pin-styled" (case-insensitive).
// An empty string selects the plain style.
func ParseMarkerStyle(s string) (MarkerStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return MarkerStylePlain, nil
	case "pin", "pin-styled", "pin_styled":
		return MarkerStylePin, nil
	default:
		return "", fmt.Errorf("unknown marker style %q (want plain or pin)", s)
	}
}
