package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `{
  "type": "FeatureCollection",
  "metadata": {"generated": 1714143000000, "title": "USGS All Earthquakes, Past Week", "count": 3},
  "features": [
    {"type": "Feature", "id": "ci40000001",
     "properties": {"mag": 4.0, "place": "10 km SSW of Idyllwild, CA", "time": 1714142400000, "url": "https://earthquake.usgs.gov/earthquakes/eventpage/ci40000001"},
     "geometry": {"type": "Point", "coordinates": [-116.75, 33.66, 5]}},
    {"type": "Feature", "id": "us7000m001",
     "properties": {"mag": null, "place": "Fiji region", "time": 1714142500000},
     "geometry": {"type": "Point", "coordinates": [178.1, -17.9, 560]}},
    {"type": "Feature", "id": "ak0240001",
     "properties": {"mag": 2.0, "place": "", "time": 1714142600000},
     "geometry": {"type": "Point", "coordinates": [-150.1, 61.2]}}
  ]
}`

func TestDecodeFeed(t *testing.T) {
	fc, err := DecodeFeed(strings.NewReader(testFeed))
	require.NoError(t, err)

	assert.Equal(t, "USGS All Earthquakes, Past Week", fc.Metadata.Title)
	assert.Len(t, fc.Features, 3)
	assert.Equal(t, time.Date(2024, 4, 26, 14, 50, 0, 0, time.UTC), fc.GeneratedAt())
	assert.Nil(t, fc.Features[1].Properties.Mag)
}

func TestDecodeFeed_Malformed(t *testing.T) {
	_, err := DecodeFeed(strings.NewReader(`{"features": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode feed")
}

func TestEventFromFeature(t *testing.T) {
	fc, err := DecodeFeed(strings.NewReader(testFeed))
	require.NoError(t, err)

	t.Run("complete feature", func(t *testing.T) {
		e, err := EventFromFeature(fc.Features[0])
		require.NoError(t, err)

		assert.Equal(t, "ci40000001", e.ID)
		assert.Equal(t, 4.0, e.Magnitude)
		assert.Equal(t, 5.0, e.DepthKm)
		assert.Equal(t, 33.66, e.Lat)
		assert.Equal(t, -116.75, e.Lon)
		assert.Equal(t, "10 km SSW of Idyllwild, CA", e.Place)
		assert.Equal(t, "feed", e.PlaceSource)
		assert.Equal(t, time.Date(2024, 4, 26, 14, 40, 0, 0, time.UTC), e.Time)
	})

	t.Run("null magnitude", func(t *testing.T) {
		_, err := EventFromFeature(fc.Features[1])
		require.ErrorIs(t, err, ErrMissingMagnitude)
		assert.Equal(t, "magnitude", SkipReason(err))
	})

	t.Run("no depth", func(t *testing.T) {
		_, err := EventFromFeature(fc.Features[2])
		require.ErrorIs(t, err, ErrMissingDepth)
		assert.Equal(t, "depth", SkipReason(err))
	})

	t.Run("no geometry", func(t *testing.T) {
		mag := 1.0
		_, err := EventFromFeature(Feature{ID: "x", Properties: Properties{Mag: &mag}})
		require.ErrorIs(t, err, ErrMissingCoordinates)
		assert.Equal(t, "coordinates", SkipReason(err))
	})

	t.Run("null depth", func(t *testing.T) {
		f := decodeFeature(t, `{"id":"nd","geometry":{"type":"Point","coordinates":[1,2,null]},"properties":{"mag":3}}`)
		_, err := EventFromFeature(f)
		require.ErrorIs(t, err, ErrMissingDepth)
		assert.Equal(t, "depth", SkipReason(err))
	})

	t.Run("null latitude", func(t *testing.T) {
		f := decodeFeature(t, `{"id":"nl","geometry":{"type":"Point","coordinates":[1,null,10]},"properties":{"mag":3}}`)
		_, err := EventFromFeature(f)
		require.ErrorIs(t, err, ErrMissingCoordinates)
		assert.Equal(t, "coordinates", SkipReason(err))
	})

	t.Run("negative magnitude is kept", func(t *testing.T) {
		mag := -0.4
		e, err := EventFromFeature(Feature{
			ID:         "nc1",
			Geometry:   &Geometry{Coordinates: []float64{-122.8, 38.8, 1.9}},
			Properties: Properties{Mag: &mag},
		})
		require.NoError(t, err)
		assert.Equal(t, -0.4, e.Magnitude)
		assert.Empty(t, e.PlaceSource)
		assert.True(t, e.Time.IsZero())
	})
}

func TestSkipReason_Unknown(t *testing.T) {
	assert.Equal(t, "invalid", SkipReason(fmt.Errorf("something else")))
}

func TestNewLayer(t *testing.T) {
	fetched := time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fetched))
	defer SetClock(nil)

	t.Run("empty feed still has legend", func(t *testing.T) {
		layer := NewLayer(FeatureCollection{}, nil, 0)

		assert.NotNil(t, layer.Markers)
		assert.Empty(t, layer.Markers)
		assert.Len(t, layer.Legend, 6)
		assert.Equal(t, fetched, layer.FetchedAt)
		assert.True(t, layer.GeneratedAt.IsZero())
	})

	t.Run("carries feed metadata", func(t *testing.T) {
		fc, err := DecodeFeed(strings.NewReader(testFeed))
		require.NoError(t, err)

		markers := []Marker{{Event: Event{ID: "ci40000001"}}}
		layer := NewLayer(fc, markers, 2)

		assert.Equal(t, "USGS All Earthquakes, Past Week", layer.Title)
		assert.Equal(t, fc.GeneratedAt(), layer.GeneratedAt)
		assert.Equal(t, 2, layer.Skipped)
		assert.Len(t, layer.Markers, 1)
	})
}

func decodeFeature(t *testing.T, doc string) Feature {
	t.Helper()
	var f Feature
	require.NoError(t, json.Unmarshal([]byte(doc), &f))
	return f
}
