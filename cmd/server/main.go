package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"poi-distance-service/internal/adapters/geometry"
	"poi-distance-service/internal/adapters/locator"
	"poi-distance-service/internal/adapters/repositories"
	"poi-distance-service/internal/api"
	"poi-distance-service/internal/config"
	"poi-distance-service/internal/ports"
	"poi-distance-service/internal/registry"
	"poi-distance-service/internal/view"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the POI source, geometry backend and view manager behind the
// HTTP API and starts the server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if strings.TrimSpace(cfg.MapsAPIKey) == "" {
		log.Fatal("MAPS_API_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geom, err := geometry.New(cfg.Geometry)
	if err != nil {
		log.Fatal(err)
	}
	if geom == nil {
		log.Printf("GEOMETRY=%s: distances will not be computed", cfg.Geometry)
	}

	src, closeSrc, err := repositories.OpenSource(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeSrc()

	reg, err := registry.Load(ctx, src)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Registry loaded source=%s pois=%d", cfg.POISource, reg.Len())

	views := view.NewManager(reg, geom, view.MapOptions{
		Center: cfg.Center,
		Zoom:   cfg.Zoom,
		MapID:  cfg.MapID,
	})
	defer views.Close()

	gin.SetMode(gin.ReleaseMode)
	router, err := api.NewRouter(api.Deps{
		Views:         views,
		NewLocator:    func() ports.Locator { return locator.NewReported() },
		APIKey:        cfg.MapsAPIKey,
		DefaultStyle:  cfg.MarkerStyle,
		SessionSecret: cfg.SessionSecret,
		SessionMaxAge: cfg.ViewTTL,
	})
	if err != nil {
		log.Fatal(err)
	}

	go sweep(ctx, views, cfg.ViewTTL)

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		log.Fatal(err)
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("op=server.Shutdown err=%v", err)
	}
}

// sweep drops views older than ttl so abandoned sessions do not
// accumulate pending acquisitions.
func sweep(ctx context.Context, views *view.Manager, ttl time.Duration) {
	t := time.NewTicker(ttl / 2)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			views.Sweep(ttl, now)
		}
	}
}
