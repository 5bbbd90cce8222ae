package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
)

// FeedSource fetches the current earthquake feed.
type FeedSource interface {
	Fetch(ctx context.Context) (domain.FeatureCollection, error)
}

// MarkerSink receives the markers of every successful build.
type MarkerSink interface {
	Publish(ctx context.Context, markers []domain.Marker, fetchedAt time.Time) error
}

// Builder turns one feed download into a map layer: fetch, decode, enrich,
// style. Nothing is kept between builds except readiness.
type Builder struct {
	source   FeedSource
	styler   domain.Styler
	geocoder domain.Geocoder
	sink     MarkerSink
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// Option configures optional Builder stages.
type Option func(*Builder)

// WithGeocoder enables place enrichment for events that arrive without one.
func WithGeocoder(g domain.Geocoder) Option {
	return func(b *Builder) { b.geocoder = g }
}

// WithSink publishes every built layer's markers.
func WithSink(s MarkerSink) Option {
	return func(b *Builder) { b.sink = s }
}

// New creates a Builder with the given feed source and styler.
func New(source FeedSource, styler domain.Styler, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Builder {
	b := &Builder{
		source:  source,
		styler:  styler,
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CheckReadiness returns nil once a layer has been built successfully.
func (b *Builder) CheckReadiness(_ context.Context) error {
	if !b.ready.Load() {
		return errors.New("no map layer has been built yet")
	}
	return nil
}

// Build fetches the feed and styles every usable event in feed order. A fetch
// failure fails the build; bad features and sink failures do not.
func (b *Builder) Build(ctx context.Context) (domain.Layer, error) {
	fc, err := b.source.Fetch(ctx)
	if err != nil {
		b.metrics.Builds.WithLabelValues("error").Inc()
		return domain.Layer{}, fmt.Errorf("fetch feed: %w", err)
	}

	markers, skipped := b.buildMarkers(ctx, fc.Features)
	layer := domain.NewLayer(fc, markers, skipped)

	b.metrics.Builds.WithLabelValues("success").Inc()
	b.metrics.MarkersBuilt.Add(float64(len(markers)))
	b.ready.Store(true)

	b.publish(ctx, layer)

	b.logger.Info("map layer built",
		"markers", len(layer.Markers),
		"skipped", skipped,
		"feed_generated_at", layer.GeneratedAt,
	)
	return layer, nil
}

func (b *Builder) buildMarkers(ctx context.Context, features []domain.Feature) ([]domain.Marker, int) {
	markers := make([]domain.Marker, 0, len(features))
	skipped := 0

	for _, f := range features {
		event, err := domain.EventFromFeature(f)
		if err != nil {
			reason := domain.SkipReason(err)
			b.logger.Warn("skipping feature", "feature_id", f.ID, "reason", reason, "error", err)
			b.metrics.FeaturesSkipped.WithLabelValues(reason).Inc()
			skipped++
			continue
		}

		event = domain.EnrichPlace(ctx, event, b.geocoder, b.logger)
		markers = append(markers, domain.BuildMarker(b.styler, event))
	}
	return markers, skipped
}

func (b *Builder) publish(ctx context.Context, layer domain.Layer) {
	if b.sink == nil || len(layer.Markers) == 0 {
		return
	}
	if err := b.sink.Publish(ctx, layer.Markers, layer.FetchedAt); err != nil {
		b.logger.Error("publish markers failed", "error", err, "markers", len(layer.Markers))
		b.metrics.PublishErrors.Inc()
		return
	}
	b.metrics.MarkersPublished.Add(float64(len(layer.Markers)))
}
