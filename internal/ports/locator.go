package ports

import (
	"context"
	"errors"
	"fmt"
	"poi-distance-service/internal/domain"
	"strings"
	"time"
)

// A single reading from a location service.
// Accuracy and timestamp are informational; views only keep the coordinates.
type Position struct {
	Coordinates    domain.Coordinates
	AccuracyMeters float64
	Timestamp      time.Time
}

// Contract for the host platform's "get current position" capability.
type Locator interface {
	// Block until the platform reports a position or a failure.
	CurrentPosition(ctx context.Context) (Position, error)
}

// Why an acquisition failed. Values match the reasons reported by browsers.
type LocationReason string

const (
	ReasonUnsupported         LocationReason = "unsupported"
	ReasonPermissionDenied    LocationReason = "permission_denied"
	ReasonPositionUnavailable LocationReason = "position_unavailable"
	ReasonTimeout             LocationReason = "timeout"
)

var (
	ErrUnsupported         = errors.New("geolocation is not supported")
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("geolocation timed out")
)

// LocationError carries a failure reason and an optional platform message.
// It unwraps to the sentinel error for its reason.
type LocationError struct {
	Reason  LocationReason
	Message string
}

func NewLocationError(reason LocationReason, msg string) *LocationError {
	return &LocationError{Reason: reason, Message: msg}
}

func (e *LocationError) Error() string {
	if e.Message == "" {
		return e.Unwrap().Error()
	}
	return fmt.Sprintf("%v: %s", e.Unwrap(), e.Message)
}

func (e *LocationError) Unwrap() error {
	switch e.Reason {
	case ReasonUnsupported:
		return ErrUnsupported
	case ReasonPermissionDenied:
		return ErrPermissionDenied
	case ReasonTimeout:
		return ErrTimeout
	default:
		return ErrPositionUnavailable
	}
}

// ParseReason accepts reason names and W3C GeolocationPositionError codes
// (1 permission denied, 2 position unavailable, 3 timeout).
func ParseReason(s string) (LocationReason, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unsupported":
		return ReasonUnsupported, nil
	case "1", "permission_denied", "permission-denied", "denied":
		return ReasonPermissionDenied, nil
	case "2", "position_unavailable", "position-unavailable", "unavailable":
		return ReasonPositionUnavailable, nil
	case "3", "timeout":
		return ReasonTimeout, nil
	default:
		return "", fmt.Errorf("unknown location failure reason %q", s)
	}
}

// ReasonOf classifies any acquisition error for diagnostics.
func ReasonOf(err error) LocationReason {
	var le *LocationError
	switch {
	case errors.As(err, &le):
		return le.Reason
	case errors.Is(err, ErrUnsupported):
		return ReasonUnsupported
	case errors.Is(err, ErrPermissionDenied):
		return ReasonPermissionDenied
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonPositionUnavailable
	}
}
