package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Immutable geographic coordinates in decimal degrees (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate rejects non-finite values and values outside [-90,90] x [-180,180].
func (c Coordinates) Validate() error {
	if !isFinite(c.Lat) || !isFinite(c.Lng) {
		return fmt.Errorf("%w: non-finite value lat=%v lng=%v", ErrInvalidCoordinates, c.Lat, c.Lng)
	}

	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinates, c.Lat)
	}

	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinates, c.Lng)
	}

	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// ParseCoordinates reads "lat,lng" and validates the result.
func ParseCoordinates(s string) (Coordinates, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinates{}, fmt.Errorf("%w: %q is not lat,lng", ErrInvalidCoordinates, s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: latitude: %v", ErrInvalidCoordinates, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: longitude: %v", ErrInvalidCoordinates, err)
	}

	c := Coordinates{Lat: lat, Lng: lng}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
