package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"poi-distance-service/internal/domain"
	"strconv"
	"strings"
)

// SQL flavor of the target database.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("unknown sql dialect %q", s)
	}
}

// rebind rewrites ? placeholders to $n for Postgres.
// Queries in this package never contain a literal '?'.
func (d Dialect) rebind(q string) string {
	if d != Postgres {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Initialize the points-of-interest schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPOIsQuery := `
	CREATE TABLE IF NOT EXISTS pois (
		poi_key TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pois_position
	ON pois(position);
	`

	statements := []string{
		createPOIsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type POISeed struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// Populate the database with points of interest from a JSON file.
// The file order becomes the display order.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed pois: read %q: %w", jsonPath, err)
	}

	var data []POISeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed pois: parse json: %w", err)
	}

	pois := make([]domain.PointOfInterest, 0, len(data))
	for _, item := range data {
		pois = append(pois, domain.PointOfInterest{
			Key:      item.Key,
			Label:    item.Label,
			Location: domain.Coordinates{Lat: item.Lat, Lng: item.Lng},
		})
	}

	return SeedPOIs(ctx, db, dialect, pois)
}

// Upsert points of interest, keeping their slice order as position.
// Rows whose key is not in pois are deleted, so the table ends up
// holding exactly pois.
func SeedPOIs(ctx context.Context, db *sql.DB, dialect Dialect, pois []domain.PointOfInterest) error {
	if db == nil {
		return errors.New("seed pois: DB is nil")
	}

	for i, p := range pois {
		if strings.TrimSpace(p.Key) == "" {
			return fmt.Errorf("seed pois: item at index %d: key cannot be empty", i+1)
		}
		if err := p.Location.Validate(); err != nil {
			return fmt.Errorf("seed pois: item %q: %w", p.Key, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed pois: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := dialect.rebind(`
	INSERT INTO pois (
		poi_key,
		position,
		label,
		lat,
		lng
	)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (poi_key) DO UPDATE
	SET position = excluded.position,
		label = excluded.label,
		lat = excluded.lat,
		lng = excluded.lng;
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed pois: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range pois {
		key := strings.TrimSpace(p.Key)
		if _, err := stmt.ExecContext(ctx, key, i, strings.TrimSpace(p.Label), p.Location.Lat, p.Location.Lng); err != nil {
			return fmt.Errorf("seed pois: insert poi_key=%q: %w", key, err)
		}
	}

	if err := pruneStale(ctx, tx, dialect, pois); err != nil {
		return fmt.Errorf("seed pois: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed pois: commit tx: %w", err)
	}

	return nil
}

// pruneStale deletes rows whose key is not among pois.
func pruneStale(ctx context.Context, tx *sql.Tx, dialect Dialect, pois []domain.PointOfInterest) error {
	query := `DELETE FROM pois`
	args := make([]any, 0, len(pois))
	if len(pois) > 0 {
		marks := make([]string, 0, len(pois))
		for _, p := range pois {
			marks = append(marks, "?")
			args = append(args, strings.TrimSpace(p.Key))
		}
		query += ` WHERE poi_key NOT IN (` + strings.Join(marks, ", ") + `)`
	}

	res, err := tx.ExecContext(ctx, dialect.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("delete stale pois: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.Printf("op=pois.seed pruned=%d", n)
	}
	return nil
}
