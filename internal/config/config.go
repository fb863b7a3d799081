package config

import (
	"fmt"
	"os"
	"poi-distance-service/internal/domain"
	"strconv"
	"strings"
	"time"
)

// Default map camera: central Phnom Penh at zoom 13.
const (
	DefaultCenterLat = 11.578268759952971
	DefaultCenterLng = 104.90178553000196
	DefaultZoom      = 13
)

// MinViewTTL is the shortest accepted VIEW_TTL.
const MinViewTTL = time.Second

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

type Config struct {
	Port          string
	MapsAPIKey    string
	MapID         string
	Zoom          int
	Center        domain.Coordinates
	MarkerStyle   domain.MarkerStyle
	Geometry      string
	POISource     string
	DBPath        string
	DatabaseURL   string
	SeedPath      string
	SessionSecret string
	ViewTTL       time.Duration
}

// Load reads the process environment. Callers load .env first.
// MAPS_API_KEY is read but not enforced here; entry points that render
// the widget or call Google require it.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		MapsAPIKey:    Get("MAPS_API_KEY", ""),
		MapID:         Get("MAP_ID", ""),
		Geometry:      Get("GEOMETRY", "s2"),
		POISource:     strings.ToLower(Get("POI_SOURCE", "builtin")),
		DBPath:        Get("DB_PATH", "data/app.db"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		SeedPath:      Get("SEED_PATH", ""),
		SessionSecret: Get("SESSION_SECRET", ""),
	}

	zoom, err := strconv.Atoi(Get("MAP_ZOOM", strconv.Itoa(DefaultZoom)))
	if err != nil || zoom < 0 || zoom > 22 {
		return Config{}, fmt.Errorf("load config: MAP_ZOOM must be an integer in [0, 22]")
	}
	cfg.Zoom = zoom

	lat, err := getFloat("MAP_CENTER_LAT", DefaultCenterLat)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	lng, err := getFloat("MAP_CENTER_LNG", DefaultCenterLng)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.Center = domain.Coordinates{Lat: lat, Lng: lng}
	if err := cfg.Center.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: map center: %w", err)
	}

	style, err := domain.ParseMarkerStyle(Get("MARKER_STYLE", string(domain.MarkerStylePlain)))
	if err != nil {
		return Config{}, fmt.Errorf("load config: MARKER_STYLE: %w", err)
	}
	cfg.MarkerStyle = style

	ttl, err := time.ParseDuration(Get("VIEW_TTL", "30m"))
	if err != nil || ttl < MinViewTTL {
		return Config{}, fmt.Errorf("load config: VIEW_TTL must be a duration of at least %s", MinViewTTL)
	}
	cfg.ViewTTL = ttl

	switch cfg.POISource {
	case "builtin", "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("load config: POI_SOURCE must be builtin, sqlite or postgres (got %q)", cfg.POISource)
	}

	return cfg, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parse %q: %w", key, raw, err)
	}
	return f, nil
}
