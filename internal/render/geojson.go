package render

import (
	"fmt"
	"poi-distance-service/internal/distance"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/view"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func point(c domain.Coordinates) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// GeoJSON turns the scene markers into a feature collection. POI features
// carry their distance when one was computed; the user marker has kind=user.
func GeoJSON(sc view.Scene) *geojson.FeatureCollection {
	lines := make(map[string]distance.Line, len(sc.Distances))
	for _, l := range sc.Distances {
		lines[l.Key] = l
	}

	fc := geojson.NewFeatureCollection()
	for i, m := range sc.Markers {
		f := geojson.NewFeature(point(m.Position))
		f.ID = m.Key
		f.Properties["kind"] = "poi"
		f.Properties["key"] = m.Key
		f.Properties["label"] = m.Label
		f.Properties["order"] = i
		if l, ok := lines[m.Key]; ok {
			f.Properties["distance_m"] = l.Meters
			f.Properties["distance_km"] = l.Kilometers
		}
		fc.Append(f)
	}

	if sc.UserMarker != nil {
		f := geojson.NewFeature(point(sc.UserMarker.Position))
		f.ID = sc.UserMarker.Key
		f.Properties["kind"] = "user"
		f.Properties["key"] = sc.UserMarker.Key
		f.Properties["label"] = sc.UserMarker.Label
		fc.Append(f)
	}

	return fc
}

// Bounds returns the bounding box of the points of interest as
// [minLng, minLat, maxLng, maxLat]. It returns nil for an empty list.
func Bounds(pois []domain.PointOfInterest) []float64 {
	if len(pois) == 0 {
		return nil
	}

	mp := make(orb.MultiPoint, 0, len(pois))
	for _, p := range pois {
		mp = append(mp, point(p.Location))
	}

	b := mp.Bound()
	return []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
}

// ParseBBox reads "minLng,minLat,maxLng,maxLat".
func ParseBBox(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("parse bbox %q: want minLng,minLat,maxLng,maxLat", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("parse bbox %q: %w", s, err)
		}
		v[i] = f
	}

	lo := domain.Coordinates{Lng: v[0], Lat: v[1]}
	hi := domain.Coordinates{Lng: v[2], Lat: v[3]}
	if err := lo.Validate(); err != nil {
		return orb.Bound{}, fmt.Errorf("parse bbox %q: %w", s, err)
	}
	if err := hi.Validate(); err != nil {
		return orb.Bound{}, fmt.Errorf("parse bbox %q: %w", s, err)
	}
	if lo.Lng > hi.Lng || lo.Lat > hi.Lat {
		return orb.Bound{}, fmt.Errorf("parse bbox %q: min corner exceeds max corner", s)
	}

	return orb.Bound{Min: point(lo), Max: point(hi)}, nil
}

// Within keeps the points of interest inside b, preserving order.
func Within(pois []domain.PointOfInterest, b orb.Bound) []domain.PointOfInterest {
	out := make([]domain.PointOfInterest, 0, len(pois))
	for _, p := range pois {
		if b.Contains(point(p.Location)) {
			out = append(out, p)
		}
	}
	return out
}
