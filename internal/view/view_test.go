package view

import (
	"context"
	"errors"
	"math"
	"poi-distance-service/internal/adapters/geometry"
	"poi-distance-service/internal/adapters/locator"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/ports"
	"poi-distance-service/internal/registry"
	"testing"
	"time"
)

func builtinRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(registry.Builtin())
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

func waitSettled(t *testing.T, v *View) Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	snap, err := v.Wait(ctx)
	if err != nil {
		t.Fatalf("view did not settle: %v", err)
	}
	return snap
}

func TestViewResolvesDistances(t *testing.T) {
	reg := builtinRegistry(t)
	user := domain.Coordinates{Lat: 11.578268759952971, Lng: 104.90178553000196}
	v := New("v1", reg, locator.NewStatic(user), geometry.NewS2(), Options{})

	if got := v.Snapshot().State; got != domain.StateUninitialized {
		t.Fatalf("initial state = %q", got)
	}

	if err := v.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := waitSettled(t, v)

	if snap.State != domain.StateLocationResolved {
		t.Fatalf("state = %q, want resolved", snap.State)
	}
	if snap.UserLocation == nil || *snap.UserLocation != user {
		t.Fatalf("user location = %v", snap.UserLocation)
	}
	if len(snap.Distances) != reg.Len() {
		t.Fatalf("len(distances) = %d, want %d", len(snap.Distances), reg.Len())
	}

	sc := v.Scene()
	if len(sc.Distances) != 5 {
		t.Fatalf("distance lines = %d, want 5", len(sc.Distances))
	}
	for i, p := range reg.All() {
		if sc.Distances[i].Key != p.Key {
			t.Fatalf("line %d key = %q, want %q", i, sc.Distances[i].Key, p.Key)
		}
		want := geometry.HaversineMeters(user, p.Location, geometry.EarthRadiusMeters)
		if math.Abs(sc.Distances[i].Meters-want) > 1 {
			t.Errorf("%s: meters = %.2f, want %.2f", p.Key, sc.Distances[i].Meters, want)
		}
	}
	if sc.UserMarker == nil || sc.UserMarker.Label != UserMarkerLabel || sc.UserMarker.Icon != UserMarkerIcon {
		t.Fatalf("user marker = %+v", sc.UserMarker)
	}
}

func TestViewPermissionDenied(t *testing.T) {
	reg := builtinRegistry(t)
	loc := locator.NewReported()
	v := New("v2", reg, loc, geometry.NewS2(), Options{})

	if err := v.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc.Fail(ports.NewLocationError(ports.ReasonPermissionDenied, "User denied Geolocation"))

	snap := waitSettled(t, v)
	if snap.State != domain.StateLocationUnavailable {
		t.Fatalf("state = %q, want unavailable", snap.State)
	}
	if snap.Reason != ports.ReasonPermissionDenied {
		t.Fatalf("reason = %q", snap.Reason)
	}
	if len(snap.Distances) != 0 || snap.UserLocation != nil {
		t.Fatalf("degraded view has location data: %+v", snap)
	}

	sc := v.Scene()
	if sc.UserMarker != nil || len(sc.Distances) != 0 {
		t.Fatalf("scene shows user data: %+v", sc)
	}
	if len(sc.Markers) != reg.Len() {
		t.Fatalf("markers = %d, want %d", len(sc.Markers), reg.Len())
	}
}

func TestViewWithoutLocator(t *testing.T) {
	v := New("v3", builtinRegistry(t), nil, geometry.NewS2(), Options{})
	if err := v.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := waitSettled(t, v)
	if snap.State != domain.StateLocationUnavailable || snap.Reason != ports.ReasonUnsupported {
		t.Fatalf("snapshot = %+v, want unavailable/unsupported", snap)
	}
}

func TestViewWithoutGeometry(t *testing.T) {
	user := domain.Coordinates{Lat: 11.5, Lng: 104.9}
	v := New("v4", builtinRegistry(t), locator.NewStatic(user), nil, Options{})
	if err := v.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := waitSettled(t, v)
	if snap.State != domain.StateLocationResolved {
		t.Fatalf("state = %q", snap.State)
	}
	if snap.UserLocation == nil {
		t.Fatal("user location should still be shown")
	}
	if len(snap.Distances) != 0 {
		t.Fatalf("distances computed without geometry: %v", snap.Distances)
	}
}

func TestViewActivatesOnce(t *testing.T) {
	v := New("v5", builtinRegistry(t), locator.NewReported(), geometry.NewS2(), Options{})
	defer v.Close()

	if err := v.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Activate(context.Background()); !errors.Is(err, ErrAlreadyActivated) {
		t.Fatalf("second Activate = %v, want ErrAlreadyActivated", err)
	}
	if got := v.Snapshot().State; got != domain.StateAwaitingLocation {
		t.Fatalf("state = %q, want awaiting", got)
	}
}

func TestViewIgnoresResultAfterClose(t *testing.T) {
	loc := locator.NewReported()
	v := New("v6", builtinRegistry(t), loc, geometry.NewS2(), Options{})

	if err := v.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v.Close()
	loc.Report(ports.Position{Coordinates: domain.Coordinates{Lat: 11.5, Lng: 104.9}})

	select {
	case <-v.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after Close")
	}

	// Give the acquisition goroutine a chance to run its completion.
	time.Sleep(20 * time.Millisecond)

	snap := v.Snapshot()
	if !snap.Closed {
		t.Fatal("snapshot not marked closed")
	}
	if snap.UserLocation != nil || len(snap.Distances) != 0 {
		t.Fatalf("late result was applied: %+v", snap)
	}
	if err := v.Activate(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("Activate after Close = %v, want ErrClosed", err)
	}
}

func TestBuildSceneMarkers(t *testing.T) {
	pois := registry.Builtin()
	user := domain.Coordinates{Lat: 0, Lng: 1}
	snap := Snapshot{
		ID:           "v7",
		State:        domain.StateLocationResolved,
		UserLocation: &user,
		Distances:    domain.Distances{"T-Soccer": 1234.5},
	}

	for _, style := range []domain.MarkerStyle{domain.MarkerStylePlain, domain.MarkerStylePin} {
		sc := BuildScene(pois, snap, Options{Style: style})

		if len(sc.Markers) != len(pois) {
			t.Fatalf("%s: markers = %d", style, len(sc.Markers))
		}
		for i, m := range sc.Markers {
			if m.Key != pois[i].Key || m.Position != pois[i].Location {
				t.Fatalf("%s: marker %d = %+v, want %+v", style, i, m, pois[i])
			}
			if (m.Pin != nil) != (style == domain.MarkerStylePin) {
				t.Fatalf("%s: marker %d pin = %v", style, i, m.Pin)
			}
		}

		if sc.UserMarker == nil || sc.UserMarker.Position != user || !sc.UserMarker.Current {
			t.Fatalf("%s: user marker = %+v", style, sc.UserMarker)
		}
		if len(sc.Distances) != 1 || sc.Distances[0].Text != "Distance to T-Soccer: 1.23 km" {
			t.Fatalf("%s: distances = %+v", style, sc.Distances)
		}
	}
}
