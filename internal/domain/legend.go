package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// LegendEntry is one row of the depth legend.
type LegendEntry struct {
	Color        string  `json:"color"`
	LowerBoundKm float64 `json:"lower_bound_km"` // exclusive; -Inf for the first bucket
	Label        string  `json:"label"`
}

// Legend returns the six depth buckets, shallowest first.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, len(depthBuckets))
	lower := math.Inf(-1)
	for i, b := range depthBuckets {
		entries[i] = LegendEntry{
			Color:        b.color,
			LowerBoundKm: lower,
			Label:        legendLabel(lower, b),
		}
		lower = b.upperKm
	}
	return entries
}

// DepthThresholds returns the bucket boundaries in kilometers (10, 30, 50, 70, 90).
func DepthThresholds() []float64 {
	out := make([]float64, 0, len(depthBuckets)-1)
	for _, b := range depthBuckets {
		if !b.open {
			out = append(out, b.upperKm)
		}
	}
	return out
}

func legendLabel(lower float64, b depthBucket) string {
	switch {
	case math.IsInf(lower, -1):
		return fmt.Sprintf("≤%s km", formatNumber(b.upperKm))
	case b.open:
		return fmt.Sprintf("%s+ km", formatNumber(lower))
	default:
		return fmt.Sprintf("%s–%s km", formatNumber(lower), formatNumber(b.upperKm))
	}
}

// MarshalJSON writes the open lower bound of the first bucket as null.
func (e LegendEntry) MarshalJSON() ([]byte, error) {
	var lower *float64
	if !math.IsInf(e.LowerBoundKm, 0) {
		lower = &e.LowerBoundKm
	}
	return json.Marshal(struct {
		Color        string   `json:"color"`
		LowerBoundKm *float64 `json:"lower_bound_km"`
		Label        string   `json:"label"`
	}{e.Color, lower, e.Label})
}
