package dto

import (
	"poi-distance-service/internal/domain"
)

type CreateViewRequest struct {
	Style string `json:"style"`
}

// PositionRequest is what the page posts after calling
// navigator.geolocation. Either Lat/Lng or Error is set.
type PositionRequest struct {
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Accuracy  float64  `json:"accuracy"`
	Timestamp float64  `json:"timestamp"`
	Error     string   `json:"error"`
	Message   string   `json:"message"`
}

type CameraRequest struct {
	Center domain.Coordinates `json:"center"`
	Zoom   float64            `json:"zoom"`
}
