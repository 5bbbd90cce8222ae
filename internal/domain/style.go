package domain

import (
	"strconv"
	"strings"
)

const (
	strokeColor  = "black"
	strokeWeight = 0.5
	radiusScale  = 5

	unknownPlace = "unknown"
)

// depthBucket is one fill color band. upperKm is inclusive; the last bucket is open-ended.
type depthBucket struct {
	color   string
	upperKm float64
	open    bool
}

// depthBuckets is the single source of truth for both ColorForDepth and Legend.
var depthBuckets = []depthBucket{
	{color: "green", upperKm: 10},
	{color: "yellowgreen", upperKm: 30},
	{color: "yellow", upperKm: 50},
	{color: "orange", upperKm: 70},
	{color: "orangered", upperKm: 90},
	{color: "red", open: true},
}

// ColorForDepth returns the fill color for a depth in kilometers. Boundary
// values belong to the shallower bucket; negative depths are "green".
func ColorForDepth(depthKm float64) string {
	for _, b := range depthBuckets {
		if b.open || depthKm <= b.upperKm {
			return b.color
		}
	}
	return depthBuckets[len(depthBuckets)-1].color
}

// RadiusForMagnitude scales magnitude to a marker radius. Non-positive
// magnitudes give non-positive radii; drawing code decides how to show them.
func RadiusForMagnitude(magnitude float64) float64 {
	return magnitude * radiusScale
}

// ResolveStyle computes the marker style for an event.
func ResolveStyle(e Event) Style {
	return Style{
		FillColor:    ColorForDepth(e.DepthKm),
		Radius:       RadiusForMagnitude(e.Magnitude),
		StrokeColor:  strokeColor,
		StrokeWeight: strokeWeight,
		Opaque:       true,
	}
}

// PopupText returns the popup lines for an event, separated by newlines:
//
//	Magnitude: 4.5
//	Location: 10 km SSW of Idyllwild, CA
//	Depth: 12.3 km
func PopupText(e Event) string {
	place := strings.TrimSpace(e.Place)
	if place == "" {
		place = unknownPlace
	}

	var b strings.Builder
	b.WriteString("Magnitude: ")
	b.WriteString(formatNumber(e.Magnitude))
	b.WriteString("\nLocation: ")
	b.WriteString(place)
	b.WriteString("\nDepth: ")
	b.WriteString(formatNumber(e.DepthKm))
	b.WriteString(" km")
	return b.String()
}

// Styler computes the per-event visual attributes of a marker.
type Styler interface {
	ComputeStyle(e Event) Style
	ComputePopupText(e Event) string
}

// DepthMagnitudeStyler colors by depth and sizes by magnitude.
type DepthMagnitudeStyler struct{}

func (DepthMagnitudeStyler) ComputeStyle(e Event) Style { return ResolveStyle(e) }
func (DepthMagnitudeStyler) ComputePopupText(e Event) string { return PopupText(e) }

// BuildMarker applies a styler to an event.
func BuildMarker(s Styler, e Event) Marker {
	return Marker{
		Event: e,
		Style: s.ComputeStyle(e),
		Popup: s.ComputePopupText(e),
	}
}

// formatNumber prints the shortest representation that round-trips, so 4 is
// "4" and 6.2 is "6.2".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
