// Command render builds the earthquake map once and writes it as a static
// HTML page. The feed comes from a saved file or is downloaded.
//
// Usage:
//
//	go run ./cmd/render -out map.html
//	go run ./cmd/render -feed-file testdata/all_week.geojson -out map.html
//
// Map center, zoom, tiles, and the default feed URL follow the same
// environment variables as the service (see internal/config).
package main

import (
	"context"
	"flag"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/quake-map/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map/internal/config"
	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/couchcryptid/quake-map/internal/pipeline"
	"github.com/couchcryptid/quake-map/internal/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	feedFile := flag.String("feed-file", "", "path to a saved GeoJSON feed (default: download FEED_URL)")
	feedURL := flag.String("feed-url", "", "feed URL to download (overrides FEED_URL)")
	out := flag.String("out", "", "output path for the HTML page")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *feedFile != "" && *feedURL != "" {
		return fmt.Errorf("-feed-file and -feed-url are mutually exclusive")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLoggerTo(os.Stderr, cfg)
	metrics := observability.NewMetrics()

	var source pipeline.FeedSource
	switch {
	case *feedFile != "":
		source = usgs.NewFileSource(*feedFile)
	case *feedURL != "":
		source = usgs.NewClient(*feedURL, cfg.FeedTimeout, metrics, logger)
	default:
		source = usgs.NewClient(cfg.FeedURL, cfg.FeedTimeout, metrics, logger)
	}

	layer, err := pipeline.New(source, domain.DepthMagnitudeStyler{}, logger, metrics).Build(context.Background())
	if err != nil {
		return err
	}

	view := render.MapView{
		CenterLat:       cfg.MapCenterLat,
		CenterLon:       cfg.MapCenterLon,
		Zoom:            cfg.MapZoom,
		TileURL:         cfg.TileURL,
		TileAttribution: cfg.TileAttribution,
	}
	page := render.NewPage(view, layer)
	if err := writePage(*out, func(w io.Writer) error { return render.RenderPage(w, page) }); err != nil {
		return err
	}

	logger.Info("map written", "path", *out, "markers", len(layer.Markers), "skipped", layer.Skipped)
	return nil
}

// writePage creates path and fills it with write. On any failure the
// partial file is removed.
func writePage(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	err = write(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		return errors.Join(err, os.Remove(path))
	}
	return nil
}
