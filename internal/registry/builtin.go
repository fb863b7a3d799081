package registry

import (
	"context"
	"poi-distance-service/internal/domain"
	"slices"
)

// Builtin returns the compiled-in sports venues around Phnom Penh.
func Builtin() []domain.PointOfInterest {
	return []domain.PointOfInterest{
		{
			Key:      "T-Soccer",
			Location: domain.Coordinates{Lat: 11.58603815946927, Lng: 104.90250606361631},
			Label:    "T-Soccer",
		},
		{
			Key:      "Sony Sport Club",
			Location: domain.Coordinates{Lat: 11.5736576, Lng: 104.9133056},
			Label:    "Sony Sport Club",
		},
		{
			Key:      "Down Town Sport",
			Location: domain.Coordinates{Lat: 11.551841, Lng: 104.900934},
			Label:    "Down Town Sport",
		},
		{
			Key:      "PhanRong Sport",
			Location: domain.Coordinates{Lat: 11.573727628331069, Lng: 104.82179080969664},
			Label:    "PhanRong Sport",
		},
		{
			Key:      "Happy Sports Cambodia",
			Location: domain.Coordinates{Lat: 11.53914874749284, Lng: 104.85660960732177},
			Label:    "Happy Sports Cambodia",
		},
	}
}

// StaticSource serves a fixed list through the POISource port.
type StaticSource []domain.PointOfInterest

func (s StaticSource) ListPOIs(ctx context.Context) ([]domain.PointOfInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone([]domain.PointOfInterest(s)), nil
}
