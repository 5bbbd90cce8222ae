package render

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/couchcryptid/quake-map/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/map.html"))

// minDisplayRadius is the smallest radius drawn, in pixels. Events with
// magnitude ≤ 0 would otherwise be invisible.
const minDisplayRadius = 1.0

// MapView is the initial map viewport and base tile layer.
type MapView struct {
	CenterLat       float64 `json:"lat"`
	CenterLon       float64 `json:"lon"`
	Zoom            int     `json:"zoom"`
	TileURL         string  `json:"tile_url"`
	TileAttribution string  `json:"tile_attribution"`
}

// Page is the data for one rendered map page.
type Page struct {
	Title   string
	View    MapView
	Markers []pageMarker
	Legend  []domain.LegendEntry
}

type pageMarker struct {
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Radius       float64 `json:"radius"`
	FillColor    string  `json:"fill_color"`
	StrokeColor  string  `json:"stroke_color"`
	StrokeWeight float64 `json:"stroke_weight"`
	Opacity      float64 `json:"opacity"`
	Popup        string  `json:"popup"`
}

// NewPage prepares a layer for the map template.
func NewPage(view MapView, layer domain.Layer) Page {
	markers := make([]pageMarker, len(layer.Markers))
	for i, m := range layer.Markers {
		opacity := 0.0
		if m.Style.Opaque {
			opacity = 1
		}
		markers[i] = pageMarker{
			Lat:          m.Event.Lat,
			Lon:          m.Event.Lon,
			Radius:       DisplayRadius(m.Style),
			FillColor:    m.Style.FillColor,
			StrokeColor:  m.Style.StrokeColor,
			StrokeWeight: m.Style.StrokeWeight,
			Opacity:      opacity,
			Popup:        PopupHTML(m.Popup),
		}
	}
	return Page{
		Title:   layer.Title,
		View:    view,
		Markers: markers,
		Legend:  layer.Legend,
	}
}

// RenderPage writes the complete HTML map page.
func RenderPage(w io.Writer, page Page) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("render map page: %w", err)
	}
	return nil
}

// DisplayRadius is the radius actually drawn for a style.
func DisplayRadius(s domain.Style) float64 {
	return max(s.Radius, minDisplayRadius)
}

// PopupHTML turns newline-separated popup text into escaped HTML lines,
// with the value of the first line in bold:
//
//	Magnitude: <strong>4.5</strong><br>Location: ...<br>Depth: 12 km
func PopupHTML(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 {
			if label, value, ok := strings.Cut(line, ": "); ok {
				lines[i] = html.EscapeString(label) + ": <strong>" + html.EscapeString(value) + "</strong>"
				continue
			}
		}
		lines[i] = html.EscapeString(line)
	}
	return strings.Join(lines, "<br>")
}
