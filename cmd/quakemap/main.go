package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-map/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-map/internal/adapter/kafka"
	"github.com/couchcryptid/quake-map/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-map/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map/internal/config"
	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/couchcryptid/quake-map/internal/pipeline"
	"github.com/couchcryptid/quake-map/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var opts []pipeline.Option

	// Place enrichment (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		opts = append(opts, pipeline.WithGeocoder(mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)))
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox place enrichment enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox place enrichment disabled")
	}

	// Marker sink (enabled by KAFKA_BROKERS).
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, pipeline.WithSink(writer))
		logger.Info("kafka marker sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaMarkerTopic)
	}

	feed := usgs.NewClient(cfg.FeedURL, cfg.FeedTimeout, metrics, logger)
	builder := pipeline.New(feed, domain.DepthMagnitudeStyler{}, logger, metrics, opts...)

	view := render.MapView{
		CenterLat:       cfg.MapCenterLat,
		CenterLon:       cfg.MapCenterLon,
		Zoom:            cfg.MapZoom,
		TileURL:         cfg.TileURL,
		TileAttribution: cfg.TileAttribution,
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, builder, view, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
