package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
	err    error
}

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{FormattedAddress: "Anchorage, Alaska"}}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedGeocoder(inner, 10, metrics)

	r1, err := cached.ReverseGeocode(context.Background(), 61.2001, -150.1001)
	require.NoError(t, err)
	r2, err := cached.ReverseGeocode(context.Background(), 61.2003, -150.0998)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "nearby coordinates should share a cache entry")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("miss")), 0)
}

func TestCachedGeocoder_DifferentKeysMiss(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{FormattedAddress: "Somewhere"}}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ReverseGeocode(context.Background(), 61.2, -150.1)
	_, _ = cached.ReverseGeocode(context.Background(), 33.66, -116.75)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ReverseGeocode(context.Background(), -60.1, -30.2)
	_, _ = cached.ReverseGeocode(context.Background(), -60.1, -30.2)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, cached.cache.len())
}

func TestCachedGeocoder_ErrorPassedThrough(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.ReverseGeocode(context.Background(), 61.2, -150.1)
	require.Error(t, err)
	assert.Equal(t, 0, cached.cache.len())
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache[string](3)

	c.put("a", "A")
	c.put("b", "B")

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", result)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache[string](2)

	c.put("a", "A")
	c.put("b", "B")
	c.put("c", "C") // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", result)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", result)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache[string](2)

	c.put("a", "A")
	c.put("b", "B")

	c.get("a")

	// "b" is now least recently used.
	c.put("c", "C")

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache[string](2)

	c.put("a", "A1")
	c.put("a", "A2")

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", result)
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_MinimumCapacity(t *testing.T) {
	c := newLRUCache[int](0)

	c.put("a", 1)
	c.put("b", 2)

	_, ok := c.get("a")
	assert.False(t, ok)
	v, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}
