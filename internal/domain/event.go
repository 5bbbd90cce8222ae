package domain

import (
	"encoding/json"
	"time"
)

// FeatureCollection is the GeoJSON document served by the USGS summary feeds.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Metadata Metadata  `json:"metadata"`
	Features []Feature `json:"features"`
}

// Metadata describes the feed itself.
type Metadata struct {
	Generated int64  `json:"generated"` // ms since epoch
	URL       string `json:"url"`
	Title     string `json:"title"`
	Count     int    `json:"count"`
}

// Feature is a single earthquake in the feed.
type Feature struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Geometry   *Geometry  `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry is a GeoJSON point: [lon, lat, depthKm].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// UnmarshalJSON keeps coordinates only up to the first null, so a null depth
// reads as a missing depth instead of 0.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string     `json:"type"`
		Coordinates []*float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Type = raw.Type
	g.Coordinates = make([]float64, 0, len(raw.Coordinates))
	for _, c := range raw.Coordinates {
		if c == nil {
			break
		}
		g.Coordinates = append(g.Coordinates, *c)
	}
	return nil
}

// Properties holds the feed attributes the map uses. Mag is a pointer because
// the feed sends null for events without a computed magnitude.
type Properties struct {
	Mag   *float64 `json:"mag"`
	Place string   `json:"place"`
	Time  int64    `json:"time"` // ms since epoch
	URL   string   `json:"url"`
}

// Event is one earthquake after decoding. It is read-only and lives only for
// the duration of a single render.
type Event struct {
	ID        string    `json:"id"`
	Magnitude float64   `json:"magnitude"`
	DepthKm   float64   `json:"depth_km"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Place     string    `json:"place"`
	Time      time.Time `json:"time"`
	URL       string    `json:"url,omitempty"`

	// PlaceSource is "feed" or "reverse" when the place came from geocoding.
	PlaceSource string `json:"place_source,omitempty"`
}

// Style is the visual description of a marker.
type Style struct {
	FillColor    string  `json:"fill_color"`
	Radius       float64 `json:"radius"`
	StrokeColor  string  `json:"stroke_color"`
	StrokeWeight float64 `json:"stroke_weight"`
	Opaque       bool    `json:"opaque"`
}

// Marker pairs an event with its resolved style and popup text.
type Marker struct {
	Event Event  `json:"event"`
	Style Style  `json:"style"`
	Popup string `json:"popup"`
}

// Layer is everything needed to draw one map: markers in feed order plus the legend.
type Layer struct {
	Title       string        `json:"title,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	FetchedAt   time.Time     `json:"fetched_at"`
	Markers     []Marker      `json:"markers"`
	Legend      []LegendEntry `json:"legend"`
	Skipped     int           `json:"skipped"`
}
