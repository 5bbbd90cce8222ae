// Command validate checks a saved USGS feed against the marker style rules:
// the legend agrees with the color thresholds, every usable feature decodes to
// sane coordinates, and every resolved style matches the reference mapping.
// With -markers-json it also checks a saved /api/markers response against
// the same feed.
//
// Usage:
//
//	go run ./cmd/validate -feed-file testdata/all_week.geojson
//	go run ./cmd/validate -feed-file all_week.geojson -markers-json markers.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/render"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	feedFile := flag.String("feed-file", "", "path to a saved GeoJSON feed")
	markersJSON := flag.String("markers-json", "", "optional path to a saved /api/markers response")
	flag.Parse()

	if *feedFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*feedFile, *markersJSON))
}

func run(feedPath, markersPath string) int {
	fmt.Println("=== Earthquake Map Validation ===")
	fmt.Println()

	fc, err := loadFeed(feedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load feed: %v\n", err)
		return 1
	}

	events, skipped := decodeAll(fc)

	phases := []*phase{
		validateLegend(),
		validateCoordinates(events),
		validateStyles(events),
	}
	if markersPath != "" {
		served, err := loadMarkers(markersPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load markers: %v\n", err)
			return 1
		}
		phases = append(phases, validateServedMarkers(events, served))
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Features: %d in feed, %d drawable, %d skipped\n", len(fc.Features), len(events), len(skipped))
	for reason, n := range countReasons(skipped) {
		fmt.Printf("  skipped (%s): %d\n", reason, n)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadFeed(path string) (domain.FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.FeatureCollection{}, err
	}
	defer f.Close()
	return domain.DecodeFeed(f)
}

func loadMarkers(path string) (render.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return render.FeatureCollection{}, err
	}
	var fc render.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return render.FeatureCollection{}, fmt.Errorf("parse markers: %w", err)
	}
	return fc, nil
}

func decodeAll(fc domain.FeatureCollection) ([]domain.Event, []error) {
	events := make([]domain.Event, 0, len(fc.Features))
	var skipped []error
	for _, f := range fc.Features {
		e, err := domain.EventFromFeature(f)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		events = append(events, e)
	}
	return events, skipped
}

func countReasons(errs []error) map[string]int {
	out := make(map[string]int)
	for _, err := range errs {
		out[domain.SkipReason(err)]++
	}
	return out
}

// ── Phases ──

func validateLegend() *phase {
	p := &phase{name: "Legend matches color thresholds"}

	legend := domain.Legend()
	thresholds := domain.DepthThresholds()
	if len(legend) != len(thresholds)+1 {
		p.errorf("legend has %d entries, want %d", len(legend), len(thresholds)+1)
		return p
	}
	for i, th := range thresholds {
		if legend[i+1].LowerBoundKm != th {
			p.errorf("legend[%d] lower bound %v, threshold %v", i+1, legend[i+1].LowerBoundKm, th)
		}
		if got := domain.ColorForDepth(th); got != legend[i].Color {
			p.errorf("depth %v colored %q, legend row %d is %q", th, got, i, legend[i].Color)
		}
		if got := domain.ColorForDepth(th + 0.001); got != legend[i+1].Color {
			p.errorf("depth %v colored %q, legend row %d is %q", th+0.001, got, i+1, legend[i+1].Color)
		}
	}
	return p
}

func validateCoordinates(events []domain.Event) *phase {
	p := &phase{name: "Coordinates in range"}
	for _, e := range events {
		if e.Lat < -90 || e.Lat > 90 {
			p.errorf("%s: latitude %v out of range", e.ID, e.Lat)
		}
		if e.Lon < -180 || e.Lon > 180 {
			p.errorf("%s: longitude %v out of range", e.ID, e.Lon)
		}
		if e.DepthKm < -10 || e.DepthKm > 800 {
			p.errorf("%s: depth %v km outside -10..800", e.ID, e.DepthKm)
		}
	}
	return p
}

func validateStyles(events []domain.Event) *phase {
	p := &phase{name: "Styles match reference mapping"}
	for _, e := range events {
		s := domain.ResolveStyle(e)
		if want := referenceColor(e.DepthKm); s.FillColor != want {
			p.errorf("%s: depth %v colored %q, want %q", e.ID, e.DepthKm, s.FillColor, want)
		}
		if want := e.Magnitude * 5; math.Abs(s.Radius-want) > 1e-9 {
			p.errorf("%s: magnitude %v radius %v, want %v", e.ID, e.Magnitude, s.Radius, want)
		}
		if s.StrokeColor != "black" || s.StrokeWeight != 0.5 || !s.Opaque {
			p.errorf("%s: unexpected stroke %q/%v opaque=%v", e.ID, s.StrokeColor, s.StrokeWeight, s.Opaque)
		}
	}
	return p
}

func validateServedMarkers(events []domain.Event, served render.FeatureCollection) *phase {
	p := &phase{name: "Served markers match feed"}
	if len(served.Features) != len(events) {
		p.errorf("served %d markers, feed has %d drawable events", len(served.Features), len(events))
		return p
	}
	for i, e := range events {
		got := served.Features[i]
		if got.ID != e.ID {
			p.errorf("marker %d: id %q, want %q (feed order)", i, got.ID, e.ID)
			continue
		}
		want := domain.ResolveStyle(e)
		if got.Properties.Style.FillColor != want.FillColor {
			p.errorf("%s: served color %q, want %q", e.ID, got.Properties.Style.FillColor, want.FillColor)
		}
		if math.Abs(got.Properties.Style.Radius-want.Radius) > 1e-9 {
			p.errorf("%s: served radius %v, want %v", e.ID, got.Properties.Style.Radius, want.Radius)
		}
	}
	return p
}

// referenceColor is an independent if-chain rendition of the depth color rules.
func referenceColor(depth float64) string {
	switch {
	case depth > 90:
		return "red"
	case depth > 70:
		return "orangered"
	case depth > 50:
		return "orange"
	case depth > 30:
		return "yellow"
	case depth > 10:
		return "yellowgreen"
	default:
		return "green"
	}
}
