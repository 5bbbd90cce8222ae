// Package domain models USGS earthquake summary feed data and the marker style
// rules used to draw each event on a map.
//
// # Data Source
//
// Events originate from the USGS Earthquake Hazards Program GeoJSON summary
// feeds, e.g. https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson.
// The feed is regenerated every minute; the service reads it once per page load.
//
// # Feed Conventions
//
// Coordinates:
//
//	geometry.coordinates = [longitude, latitude, depth]
//	Longitude comes first (GeoJSON order). Depth is kilometers below the surface
//	and may be slightly negative for events above the geoid (e.g. -2.1).
//
// Magnitude:
//
//	properties.mag is a decimal on the magnitude type given by properties.magType
//	(ml, md, mb, mww, ...). Values are typically 0–10, may be negative for very
//	small events, and may be null for events still under review.
//
// Time:
//
//	properties.time and metadata.generated are milliseconds since the Unix epoch.
//
// Place:
//
//	properties.place is a free-text description, e.g. "10 km SSW of Idyllwild, CA".
//	It can be empty or null for remote events.
//
// # Marker Style
//
// Fill color is a step function of depth over five thresholds (10, 30, 50, 70,
// 90 km); a depth exactly on a threshold belongs to the shallower bucket:
//
//	≤10 green | ≤30 yellowgreen | ≤50 yellow | ≤70 orange | ≤90 orangered | >90 red
//
// Radius is magnitude × 5 with no clamping. Stroke is black at weight 0.5 and the
// marker is fully opaque. The legend is built from the same bucket table, see
// [depthBuckets].
package domain
