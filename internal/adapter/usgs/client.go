package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
)

// Client downloads a USGS GeoJSON summary feed. It performs exactly one request
// per Fetch; callers decide whether and when to fetch again.
type Client struct {
	feedURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client for the given URL.
func NewClient(feedURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch downloads and decodes the feed.
func (c *Client) Fetch(ctx context.Context) (domain.FeatureCollection, error) {
	start := time.Now()
	fc, err := c.fetch(ctx)
	c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FeedFetches.WithLabelValues("error").Inc()
		return domain.FeatureCollection{}, err
	}
	c.metrics.FeedFetches.WithLabelValues("success").Inc()
	c.logger.Debug("feed fetched",
		"url", c.feedURL,
		"features", len(fc.Features),
		"duration", time.Since(start),
	)
	return fc, nil
}

func (c *Client) fetch(ctx context.Context) (domain.FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.FeatureCollection{}, fmt.Errorf("feed error: status %d: %s", resp.StatusCode, body)
	}

	return domain.DecodeFeed(resp.Body)
}
