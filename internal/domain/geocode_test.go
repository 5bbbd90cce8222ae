package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestEnrichPlace_NilGeocoder(t *testing.T) {
	event := Event{ID: "evt-1", Lat: 61.2, Lon: -150.1}

	result := EnrichPlace(context.Background(), event, nil, discardLogger())

	assert.Equal(t, event, result)
}

func TestEnrichPlace_PlaceAlreadySet(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{FormattedAddress: "Anchorage, Alaska"}}
	event := Event{ID: "evt-1", Place: "5 km N of Anchorage, Alaska", PlaceSource: "feed"}

	result := EnrichPlace(context.Background(), event, geo, discardLogger())

	assert.Equal(t, "5 km N of Anchorage, Alaska", result.Place)
	assert.Equal(t, 0, geo.calls)
}

func TestEnrichPlace_Reverse(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{
		FormattedAddress: "Anchorage, Alaska, United States",
		PlaceName:        "Anchorage",
		Confidence:       0.9,
	}}
	event := Event{ID: "evt-1", Lat: 61.2, Lon: -150.1}

	result := EnrichPlace(context.Background(), event, geo, discardLogger())

	assert.Equal(t, "Anchorage, Alaska, United States", result.Place)
	assert.Equal(t, "reverse", result.PlaceSource)
	assert.Equal(t, 1, geo.calls)
}

func TestEnrichPlace_Error(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("api down")}
	event := Event{ID: "evt-1", Lat: 61.2, Lon: -150.1}

	result := EnrichPlace(context.Background(), event, geo, discardLogger())

	assert.Empty(t, result.Place)
	assert.Empty(t, result.PlaceSource)
}

func TestEnrichPlace_EmptyResult(t *testing.T) {
	geo := &mockGeocoder{}
	event := Event{ID: "evt-1", Lat: -60.1, Lon: -30.2}

	result := EnrichPlace(context.Background(), event, geo, discardLogger())

	assert.Empty(t, result.Place)
	assert.Equal(t, 1, geo.calls)
}
