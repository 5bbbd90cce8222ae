package domain

// NewLayer assembles a Layer from built markers. The legend is always
// attached, even when there are no markers.
func NewLayer(fc FeatureCollection, markers []Marker, skipped int) Layer {
	if markers == nil {
		markers = []Marker{}
	}
	return Layer{
		Title:       fc.Metadata.Title,
		GeneratedAt: fc.GeneratedAt(),
		FetchedAt:   clock.Now().UTC(),
		Markers:     markers,
		Legend:      Legend(),
		Skipped:     skipped,
	}
}
