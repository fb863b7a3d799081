package dto

import (
	"poi-distance-service/internal/distance"
	"poi-distance-service/internal/domain"
)

type POIResponse struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type ListPOIResponse struct {
	POIs []POIResponse `json:"pois"`
	BBox []float64     `json:"bbox"`
}

type DistanceRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type DistanceResponse struct {
	User      domain.Coordinates `json:"user"`
	Distances []distance.Line    `json:"distances"`
}
