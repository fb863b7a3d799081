package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"poi-distance-service/internal/adapters/geometry"
	"poi-distance-service/internal/adapters/locator"
	"poi-distance-service/internal/adapters/repositories"
	"poi-distance-service/internal/config"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/ports"
	"poi-distance-service/internal/registry"
	"poi-distance-service/internal/render"
	"poi-distance-service/internal/view"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type options struct {
	at      string
	locate  string
	style   string
	format  string
	timeout time.Duration
}

// poidist mounts a single view, acquires the location once and prints the
// resulting scene.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	var opts options
	flag.StringVar(&opts.at, "at", "", "user location as lat,lng (for -locate static)")
	flag.StringVar(&opts.locate, "locate", "static", "location service: static, google or none")
	flag.StringVar(&opts.style, "style", "", "marker style: plain or pin (default MARKER_STYLE)")
	flag.StringVar(&opts.format, "format", "text", "output format: text, json, geojson or xlsx")
	flag.DurationVar(&opts.timeout, "timeout", 10*time.Second, "location acquisition timeout")
	outPath := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}

	if err := run(context.Background(), cfg, opts, w); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, w io.Writer) error {
	style := cfg.MarkerStyle
	if opts.style != "" {
		s, err := domain.ParseMarkerStyle(opts.style)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		style = s
	}

	loc, err := newLocator(opts.locate, opts.at, cfg.MapsAPIKey)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	geom, err := geometry.New(cfg.Geometry)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	src, closeSrc, err := repositories.OpenSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer closeSrc()

	reg, err := registry.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	v := view.New(uuid.NewString(), reg, loc, geom, view.Options{
		Style: style,
		Map:   view.MapOptions{Center: cfg.Center, Zoom: cfg.Zoom, MapID: cfg.MapID},
	})
	defer v.Close()

	actx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	if err := v.Activate(actx); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	snap, err := v.Wait(actx)
	if err != nil || !snap.State.Terminal() {
		log.Printf("view_id=%s op=view.Wait state=%s err=%v", v.ID(), snap.State, err)
	}

	return write(w, opts.format, v.Scene())
}

func newLocator(kind, at, apiKey string) (ports.Locator, error) {
	switch kind {
	case "static":
		if at == "" {
			return nil, errors.New("-at lat,lng is required with -locate static")
		}
		c, err := domain.ParseCoordinates(at)
		if err != nil {
			return nil, fmt.Errorf("-at: %w", err)
		}
		return locator.NewStatic(c), nil
	case "google":
		g, err := locator.NewGoogle(apiKey)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "none":
		return locator.Unsupported{}, nil
	default:
		return nil, fmt.Errorf("unknown -locate %q", kind)
	}
}

func write(w io.Writer, format string, sc view.Scene) error {
	switch format {
	case "text":
		return render.WriteText(w, sc)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sc)
	case "geojson":
		raw, err := render.GeoJSON(sc).MarshalJSON()
		if err != nil {
			return fmt.Errorf("write geojson: %w", err)
		}
		_, err = fmt.Fprintln(w, string(raw))
		return err
	case "xlsx":
		return render.WriteXLSX(w, sc)
	default:
		return fmt.Errorf("unknown -format %q", format)
	}
}
