package repositories

import (
	"context"
	"os"
	"path/filepath"
	"poi-distance-service/internal/config"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/platform/db"
	"poi-distance-service/internal/registry"
	"testing"
)

func openTestDB(t *testing.T) *SQLPOIRepository {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSQLPOIRepository(conn, SQLite)
}

func TestSeedAndListKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	if err := SeedPOIs(ctx, repo.DB, SQLite, registry.Builtin()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	pois, err := repo.ListPOIs(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := registry.Builtin()
	if len(pois) != len(want) {
		t.Fatalf("len = %d, want %d", len(pois), len(want))
	}
	for i := range want {
		if pois[i] != want[i] {
			t.Fatalf("pois[%d] = %+v, want %+v", i, pois[i], want[i])
		}
	}

	n, err := repo.CountPOIs(ctx)
	if err != nil || n != 5 {
		t.Fatalf("CountPOIs = %d, %v", n, err)
	}
}

func TestSeedUpserts(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	first := []domain.PointOfInterest{
		{Key: "A", Label: "Alpha", Location: domain.Coordinates{Lat: 1, Lng: 1}},
		{Key: "B", Location: domain.Coordinates{Lat: 2, Lng: 2}},
	}
	if err := SeedPOIs(ctx, repo.DB, SQLite, first); err != nil {
		t.Fatalf("seed: %v", err)
	}

	second := []domain.PointOfInterest{
		{Key: "B", Label: "Bravo", Location: domain.Coordinates{Lat: 3, Lng: 3}},
		{Key: "A", Label: "Alpha", Location: domain.Coordinates{Lat: 1, Lng: 1}},
	}
	if err := SeedPOIs(ctx, repo.DB, SQLite, second); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	pois, err := repo.ListPOIs(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pois) != 2 || pois[0].Key != "B" || pois[0].Label != "Bravo" || pois[0].Location.Lat != 3 {
		t.Fatalf("unexpected pois after upsert: %+v", pois)
	}
}

func TestReseedDropsMissingKeys(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	if err := SeedPOIs(ctx, repo.DB, SQLite, registry.Builtin()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	shorter := []domain.PointOfInterest{
		{Key: "PhanRong Sport", Location: domain.Coordinates{Lat: 11.57, Lng: 104.82}},
		{Key: "T-Soccer", Location: domain.Coordinates{Lat: 11.58, Lng: 104.90}},
	}
	if err := SeedPOIs(ctx, repo.DB, SQLite, shorter); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	pois, err := repo.ListPOIs(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pois) != 2 || pois[0].Key != "PhanRong Sport" || pois[1].Key != "T-Soccer" {
		t.Fatalf("pois after reseed = %+v", pois)
	}

	n, err := repo.CountPOIs(ctx)
	if err != nil || n != 2 {
		t.Fatalf("CountPOIs() = %d, %v", n, err)
	}
}

func TestSeedRejectsInvalid(t *testing.T) {
	repo := openTestDB(t)
	bad := []domain.PointOfInterest{{Key: "X", Location: domain.Coordinates{Lat: 200}}}

	if err := SeedPOIs(context.Background(), repo.DB, SQLite, bad); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	path := filepath.Join(t.TempDir(), "pois.json")
	body := `[{"key":"P1","label":"Origin","lat":0,"lng":0},{"key":"P2","lat":0,"lng":1}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	if err := SeedFromJSON(ctx, repo.DB, SQLite, path); err != nil {
		t.Fatalf("seed from json: %v", err)
	}

	reg, err := registry.Load(ctx, repo)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	if got := reg.Keys(); len(got) != 2 || got[0] != "P1" || got[1] != "P2" {
		t.Fatalf("keys = %v", got)
	}
}

func TestRebind(t *testing.T) {
	q := "VALUES (?, ?, ?)"
	if got := Postgres.rebind(q); got != "VALUES ($1, $2, $3)" {
		t.Fatalf("postgres rebind = %q", got)
	}
	if got := SQLite.rebind(q); got != q {
		t.Fatalf("sqlite rebind = %q", got)
	}
}

func TestOpenSourceSQLiteSeedsBuiltin(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{POISource: "sqlite", DBPath: filepath.Join(t.TempDir(), "pois.db")}

	src, closeFn, err := OpenSource(ctx, cfg)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	defer closeFn()

	reg, err := registry.Load(ctx, src)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	if reg.Len() != len(registry.Builtin()) {
		t.Fatalf("Len() = %d", reg.Len())
	}
}

func TestOpenSourceBuiltinAndErrors(t *testing.T) {
	ctx := context.Background()

	src, closeFn, err := OpenSource(ctx, config.Config{POISource: "builtin"})
	if err != nil {
		t.Fatalf("open builtin: %v", err)
	}
	defer closeFn()
	if pois, _ := src.ListPOIs(ctx); len(pois) != 5 {
		t.Fatalf("builtin pois = %d", len(pois))
	}

	if _, _, err := OpenSource(ctx, config.Config{POISource: "postgres"}); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}
