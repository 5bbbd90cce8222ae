package render

import (
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
)

// FeatureCollection is a styled GeoJSON view of a layer, for clients that
// draw the map themselves.
type FeatureCollection struct {
	Type      string    `json:"type"`
	FetchedAt time.Time `json:"fetched_at"`
	Skipped   int       `json:"skipped"`
	Features  []Feature `json:"features"`
}

// Feature is one styled marker.
type Feature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Geometry   domain.Geometry   `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// FeatureProperties carries the event attributes plus its resolved style.
type FeatureProperties struct {
	Mag           float64      `json:"mag"`
	Place         string       `json:"place"`
	Time          time.Time    `json:"time"`
	URL           string       `json:"url,omitempty"`
	Style         domain.Style `json:"style"`
	DisplayRadius float64      `json:"display_radius"`
	Popup         string       `json:"popup"`
}

// GeoJSON converts a layer to a styled FeatureCollection, preserving marker order.
func GeoJSON(layer domain.Layer) FeatureCollection {
	features := make([]Feature, len(layer.Markers))
	for i, m := range layer.Markers {
		features[i] = Feature{
			Type: "Feature",
			ID:   m.Event.ID,
			Geometry: domain.Geometry{
				Type:        "Point",
				Coordinates: []float64{m.Event.Lon, m.Event.Lat, m.Event.DepthKm},
			},
			Properties: FeatureProperties{
				Mag:           m.Event.Magnitude,
				Place:         m.Event.Place,
				Time:          m.Event.Time,
				URL:           m.Event.URL,
				Style:         m.Style,
				DisplayRadius: DisplayRadius(m.Style),
				Popup:         m.Popup,
			},
		}
	}
	return FeatureCollection{
		Type:      "FeatureCollection",
		FetchedAt: layer.FetchedAt,
		Skipped:   layer.Skipped,
		Features:  features,
	}
}
