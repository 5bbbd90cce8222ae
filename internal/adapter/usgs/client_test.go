package usgs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentTypeGeoJSON = "application/geo+json"
	headerContentType  = "Content-Type"

	sampleFeed = `{"type":"FeatureCollection","metadata":{"generated":1714143000000,"title":"USGS All Earthquakes, Past Week","count":1},
"features":[{"type":"Feature","id":"ci40000001","properties":{"mag":4.0,"place":"10 km SSW of Idyllwild, CA","time":1714142400000},
"geometry":{"type":"Point","coordinates":[-116.75,33.66,5]}}]}`
)

func testClient(url string, timeout time.Duration) (*Client, *observability.Metrics) {
	m := observability.NewMetricsForTesting()
	return NewClient(url, timeout, m, slog.New(slog.NewTextHandler(io.Discard, nil))), m
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set(headerContentType, contentTypeGeoJSON)
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	c, m := testClient(srv.URL, 5*time.Second)
	fc, err := c.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, fc.Features, 1)
	assert.Equal(t, "ci40000001", fc.Features[0].ID)
	assert.Equal(t, []float64{-116.75, 33.66, 5}, fc.Features[0].Geometry.Coordinates)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FeedFetches.WithLabelValues("success")), 0)
}

func TestClient_Fetch_EmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeGeoJSON)
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	c, _ := testClient(srv.URL, 5*time.Second)
	fc, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fc.Features)
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	c, m := testClient(srv.URL, 5*time.Second)
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "maintenance")
	assert.InDelta(t, 1, testutil.ToFloat64(m.FeedFetches.WithLabelValues("error")), 0)
}

func TestClient_Fetch_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c, _ := testClient(srv.URL, 5*time.Second)
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode feed")
}

func TestClient_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := testClient(srv.URL, 50*time.Millisecond)
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
}
