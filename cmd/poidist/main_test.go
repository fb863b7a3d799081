package main

import (
	"bytes"
	"context"
	"encoding/json"
	"poi-distance-service/internal/config"
	"poi-distance-service/internal/domain"
	"strings"
	"testing"
	"time"
)

func testConfig() config.Config {
	return config.Config{
		Zoom:        config.DefaultZoom,
		Center:      domain.Coordinates{Lat: config.DefaultCenterLat, Lng: config.DefaultCenterLng},
		MarkerStyle: domain.MarkerStylePlain,
		Geometry:    "s2",
		POISource:   "builtin",
	}
}

func TestRunText(t *testing.T) {
	opts := options{at: "11.56,104.88", locate: "static", format: "text", timeout: time.Second}

	var buf bytes.Buffer
	if err := run(context.Background(), testConfig(), opts, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "Distance to "); got != 5 {
		t.Fatalf("distance lines = %d, want 5:\n%s", got, out)
	}
	if !strings.Contains(out, "You are here: 11.560000,104.880000") {
		t.Fatalf("missing user line:\n%s", out)
	}
}

func TestRunUnsupportedJSON(t *testing.T) {
	opts := options{locate: "none", style: "pin", format: "json", timeout: time.Second}

	var buf bytes.Buffer
	if err := run(context.Background(), testConfig(), opts, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	var sc struct {
		State     string `json:"state"`
		Reason    string `json:"reason"`
		Style     string `json:"style"`
		Markers   []any  `json:"markers"`
		Distances []any  `json:"distances"`
	}
	if err := json.Unmarshal(buf.Bytes(), &sc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sc.State != "location_unavailable" || sc.Reason != "unsupported" || sc.Style != "pin" {
		t.Fatalf("scene = %+v", sc)
	}
	if len(sc.Markers) != 5 || len(sc.Distances) != 0 {
		t.Fatalf("markers = %d distances = %d", len(sc.Markers), len(sc.Distances))
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"static without at", options{locate: "static", format: "text", timeout: time.Second}},
		{"bad at", options{at: "north", locate: "static", format: "text", timeout: time.Second}},
		{"unknown locator", options{locate: "gps", format: "text", timeout: time.Second}},
		{"google without key", options{locate: "google", format: "text", timeout: time.Second}},
		{"unknown format", options{at: "0,0", locate: "static", format: "yaml", timeout: time.Second}},
		{"bad style", options{at: "0,0", locate: "static", style: "neon", format: "text", timeout: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := run(context.Background(), testConfig(), tt.opts, &buf); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
