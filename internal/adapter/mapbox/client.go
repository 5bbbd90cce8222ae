package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
)

const (
	defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

	// Offshore epicenters rarely fall inside a place polygon; region and
	// country still give the popup something to show.
	reverseTypes = "place,region,country"
)

// Client reverse geocodes epicenters with the Mapbox Geocoding API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox client that gives up on a lookup after timeout.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// ReverseGeocode returns the best place match for an epicenter. An empty
// result with a nil error means Mapbox knows nothing there.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	start := time.Now()
	result, err := c.lookup(ctx, c.reverseURL(lat, lon))
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	c.metrics.GeocodeRequests.WithLabelValues(outcome(result, err)).Inc()
	return result, err
}

// reverseURL builds {base}/{lon},{lat}.json; Mapbox takes longitude first.
func (c *Client) reverseURL(lat, lon float64) string {
	q := url.Values{
		"access_token": {c.token},
		"limit":        {"1"},
		"types":        {reverseTypes},
	}
	return fmt.Sprintf("%s/%.6f,%.6f.json?%s", c.baseURL, lon, lat, q.Encode())
}

func (c *Client) lookup(ctx context.Context, u string) (domain.GeocodingResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.GeocodingResult{}, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var places placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("decode response: %w", err)
	}
	if len(places.Features) == 0 {
		c.logger.Debug("no place near epicenter")
		return domain.GeocodingResult{}, nil
	}
	return places.Features[0].toResult(), nil
}

func outcome(result domain.GeocodingResult, err error) string {
	switch {
	case err != nil:
		return "error"
	case result.FormattedAddress == "":
		return "empty"
	default:
		return "success"
	}
}

type placesResponse struct {
	Features []placeFeature `json:"features"`
}

type placeFeature struct {
	Center    []float64 `json:"center"` // [lon, lat]
	PlaceName string    `json:"place_name"`
	Text      string    `json:"text"`
	Relevance float64   `json:"relevance"`
}

func (f placeFeature) toResult() domain.GeocodingResult {
	r := domain.GeocodingResult{
		FormattedAddress: f.PlaceName,
		PlaceName:        f.Text,
		Confidence:       f.Relevance,
	}
	if len(f.Center) == 2 {
		r.Lon, r.Lat = f.Center[0], f.Center[1]
	}
	return r
}
