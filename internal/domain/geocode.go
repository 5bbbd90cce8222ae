package domain

import (
	"context"
	"log/slog"
)

// EnrichPlace fills an empty place from reverse geocoding. If geocoder is nil,
// the place is already set, or the lookup fails, the event is returned as-is.
func EnrichPlace(ctx context.Context, event Event, geocoder Geocoder, logger *slog.Logger) Event {
	if geocoder == nil || event.Place != "" {
		return event
	}

	result, err := geocoder.ReverseGeocode(ctx, event.Lat, event.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"event_id", event.ID,
			"lat", event.Lat,
			"lon", event.Lon,
			"error", err,
		)
		return event
	}
	if result.FormattedAddress == "" {
		return event
	}

	event.Place = result.FormattedAddress
	event.PlaceSource = "reverse"
	return event
}
