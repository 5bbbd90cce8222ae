package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// Reasons a feature cannot become an Event. They double as metric labels via SkipReason.
var (
	ErrMissingCoordinates = errors.New("missing coordinates")
	ErrMissingDepth       = errors.New("missing depth")
	ErrMissingMagnitude   = errors.New("missing magnitude")
)

// DecodeFeed reads a GeoJSON feed document.
func DecodeFeed(r io.Reader) (FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return FeatureCollection{}, fmt.Errorf("decode feed: %w", err)
	}
	return fc, nil
}

// EventFromFeature converts a feed feature into an Event. Features without a
// magnitude or a depth are rejected rather than drawn with made-up values.
func EventFromFeature(f Feature) (Event, error) {
	if f.Geometry == nil || len(f.Geometry.Coordinates) < 2 {
		return Event{}, fmt.Errorf("feature %q: %w", f.ID, ErrMissingCoordinates)
	}
	if len(f.Geometry.Coordinates) < 3 {
		return Event{}, fmt.Errorf("feature %q: %w", f.ID, ErrMissingDepth)
	}
	if f.Properties.Mag == nil {
		return Event{}, fmt.Errorf("feature %q: %w", f.ID, ErrMissingMagnitude)
	}

	c := f.Geometry.Coordinates
	e := Event{
		ID:        f.ID,
		Magnitude: *f.Properties.Mag,
		Lon:       c[0],
		Lat:       c[1],
		DepthKm:   c[2],
		Place:     f.Properties.Place,
		URL:       f.Properties.URL,
		Time:      msToTime(f.Properties.Time),
	}
	if e.Place != "" {
		e.PlaceSource = "feed"
	}
	return e, nil
}

// SkipReason maps a decode error to a short label, "invalid" if unrecognized.
func SkipReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingCoordinates):
		return "coordinates"
	case errors.Is(err, ErrMissingDepth):
		return "depth"
	case errors.Is(err, ErrMissingMagnitude):
		return "magnitude"
	default:
		return "invalid"
	}
}

// GeneratedAt returns the feed generation time, zero if the feed omits it.
func (fc FeatureCollection) GeneratedAt() time.Time {
	return msToTime(fc.Metadata.Generated)
}

func msToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
