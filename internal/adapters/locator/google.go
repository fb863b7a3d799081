package locator

import (
	"context"
	"errors"
	"fmt"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/platform/obs"
	"poi-distance-service/internal/ports"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

// Google resolves the host position with the Google Geolocation API,
// using the caller's IP address.
type Google struct {
	client *maps.Client
}

func NewGoogle(apiKey string, opts ...maps.ClientOption) (*Google, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("new google locator: api key is empty")
	}

	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("new google locator: %w", err)
	}

	return &Google{client: c}, nil
}

func (g *Google) CurrentPosition(ctx context.Context) (_ ports.Position, err error) {
	defer obs.Time(ctx, "google.Geolocate")(&err)

	res, err := g.client.Geolocate(ctx, &maps.GeolocationRequest{ConsiderIP: true})
	if err != nil {
		return ports.Position{}, classifyGeolocateError(err)
	}

	return ports.Position{
		Coordinates:    domain.Coordinates{Lat: res.Location.Lat, Lng: res.Location.Lng},
		AccuracyMeters: res.Accuracy,
		Timestamp:      time.Now(),
	}, nil
}

// classifyGeolocateError maps Geolocation API failures onto the
// acquisition failure taxonomy.
func classifyGeolocateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ports.NewLocationError(ports.ReasonTimeout, err.Error())
	}

	msg := err.Error()
	for _, denied := range []string{"keyInvalid", "accessNotConfigured", "dailyLimitExceeded", "userRateLimitExceeded", "REQUEST_DENIED", "PERMISSION_DENIED"} {
		if strings.Contains(msg, denied) {
			return ports.NewLocationError(ports.ReasonPermissionDenied, msg)
		}
	}

	return ports.NewLocationError(ports.ReasonPositionUnavailable, msg)
}
