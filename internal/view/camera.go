package view

import (
	"log"
	"poi-distance-service/internal/domain"
)

// A camera change reported by the map widget.
type CameraEvent struct {
	Center domain.Coordinates `json:"center"`
	Zoom   float64            `json:"zoom"`
}

// ObserveCamera logs a camera change. Camera movement never affects state.
func (v *View) ObserveCamera(ev CameraEvent) {
	log.Printf("view_id=%s op=camera.changed center=%s zoom=%g", v.id, ev.Center, ev.Zoom)
}

// ObserveMapLoaded logs that the widget finished loading the Maps API.
func (v *View) ObserveMapLoaded() {
	log.Printf("view_id=%s op=maps.loaded msg=%q", v.id, "Maps API has loaded.")
}
