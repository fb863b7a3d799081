package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"poi-distance-service/internal/adapters/repositories"
	"poi-distance-service/internal/config"
	"poi-distance-service/internal/platform/db"
	"poi-distance-service/internal/registry"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := flag.String("driver", "postgres", "database to seed: postgres or sqlite")
	flag.Parse()

	dialect, err := repositories.ParseDialect(*driver)
	if err != nil {
		log.Fatal(err)
	}

	var conn *sql.DB
	switch dialect {
	case repositories.Postgres:
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			log.Fatal("DATABASE_URL is required")
		}
		conn, err = db.Open(databaseURL)
	default:
		conn, err = db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	seedPath := config.Get("SEED_PATH", "data/seeds/pois.json")
	if err := initAndSeed(ctx, conn, dialect, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if _, err := os.Stat(seedPath); err == nil {
		if err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	} else {
		log.Printf("Seed file %q not found, seeding builtin list", seedPath)
		if err := repositories.SeedPOIs(ctx, conn, dialect, registry.Builtin()); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	}
	log.Println("Seeding complete.")

	return nil
}
