package config

import (
	"poi-distance-service/internal/domain"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MAPS_API_KEY", "MAP_ZOOM", "MAP_CENTER_LAT", "MAP_CENTER_LNG", "MARKER_STYLE", "POI_SOURCE", "VIEW_TTL", "GEOMETRY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Zoom != DefaultZoom {
		t.Fatalf("port/zoom = %q/%d", cfg.Port, cfg.Zoom)
	}
	if cfg.Center != (domain.Coordinates{Lat: DefaultCenterLat, Lng: DefaultCenterLng}) {
		t.Fatalf("center = %v", cfg.Center)
	}
	if cfg.MarkerStyle != domain.MarkerStylePlain || cfg.POISource != "builtin" || cfg.Geometry != "s2" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ViewTTL != 30*time.Minute {
		t.Fatalf("ttl = %v", cfg.ViewTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAPS_API_KEY", "  key-123 ")
	t.Setenv("MARKER_STYLE", "pin-styled")
	t.Setenv("MAP_ZOOM", "15")
	t.Setenv("MAP_CENTER_LAT", "0")
	t.Setenv("MAP_CENTER_LNG", "1.5")
	t.Setenv("POI_SOURCE", "SQLite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MapsAPIKey != "key-123" {
		t.Fatalf("api key = %q", cfg.MapsAPIKey)
	}
	if cfg.MarkerStyle != domain.MarkerStylePin || cfg.Zoom != 15 || cfg.POISource != "sqlite" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Center != (domain.Coordinates{Lat: 0, Lng: 1.5}) {
		t.Fatalf("center = %v", cfg.Center)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"zoom not a number", "MAP_ZOOM", "far"},
		{"center out of range", "MAP_CENTER_LAT", "95"},
		{"unknown marker style", "MARKER_STYLE", "sparkly"},
		{"negative ttl", "VIEW_TTL", "-1m"},
		{"ttl below minimum", "VIEW_TTL", "1ns"},
		{"unknown poi source", "POI_SOURCE", "mongo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%q: expected error", tt.key, tt.val)
			}
		})
	}
}

func TestLoadAcceptsMinimumTTL(t *testing.T) {
	t.Setenv("VIEW_TTL", "1s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ViewTTL != MinViewTTL {
		t.Fatalf("ttl = %v, want %v", cfg.ViewTTL, MinViewTTL)
	}
}
