package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"poi-distance-service/internal/config"
	"poi-distance-service/internal/platform/db"
	"poi-distance-service/internal/ports"
	"poi-distance-service/internal/registry"
	"strings"
)

func noopClose() error { return nil }

// OpenSource returns the POI source selected by cfg.POISource and a
// function releasing its resources.
//
//   - builtin: the compiled-in list
//   - sqlite: cfg.DBPath, schema created and seeded on first use
//   - postgres: cfg.DatabaseURL, schema and data managed by cmd/dbtool
func OpenSource(ctx context.Context, cfg config.Config) (ports.POISource, func() error, error) {
	switch cfg.POISource {
	case "", "builtin":
		return registry.StaticSource(registry.Builtin()), noopClose, nil

	case "sqlite":
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open poi source: %w", err)
		}
		if err := initAndSeed(ctx, conn, SQLite, cfg.SeedPath); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open poi source: %w", err)
		}
		return NewSQLPOIRepository(conn, SQLite), conn.Close, nil

	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, nil, errors.New("open poi source: DATABASE_URL is required for POI_SOURCE=postgres")
		}
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open poi source: %w", err)
		}
		return NewSQLPOIRepository(conn, Postgres), conn.Close, nil

	default:
		return nil, nil, fmt.Errorf("open poi source: unknown source %q", cfg.POISource)
	}
}

// initAndSeed creates the schema and seeds an empty table, from seedPath
// when it exists and from the builtin list otherwise.
func initAndSeed(ctx context.Context, conn *sql.DB, dialect Dialect, seedPath string) error {
	if err := InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	n, err := NewSQLPOIRepository(conn, dialect).CountPOIs(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if n > 0 {
		return nil
	}

	if seedPath != "" {
		if _, err := os.Stat(seedPath); err == nil {
			log.Printf("op=pois.seed source=%s", seedPath)
			if err := SeedFromJSON(ctx, conn, dialect, seedPath); err != nil {
				return fmt.Errorf("init and seed: %w", err)
			}
			return nil
		}
		log.Printf("op=pois.seed seed file %q not found, using builtin list", seedPath)
	}

	if err := SeedPOIs(ctx, conn, dialect, registry.Builtin()); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}
