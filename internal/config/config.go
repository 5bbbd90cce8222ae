package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultFeedURL is the USGS "all earthquakes, past week" summary feed.
const DefaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"

const (
	defaultTileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultTileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	FeedURL     string
	FeedTimeout time.Duration

	// Map presentation.
	MapCenterLat    float64
	MapCenterLon    float64
	MapZoom         int
	TileURL         string
	TileAttribution string

	// Mapbox reverse geocoding for events without a place.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Kafka marker sink; disabled when no brokers are configured.
	KafkaBrokers     []string
	KafkaMarkerTopic string
}

// KafkaEnabled reports whether built markers should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := parsePositiveDuration("FEED_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	centerLat, err := parseFloat("MAP_CENTER_LAT", 37.09)
	if err != nil {
		return nil, err
	}
	centerLon, err := parseFloat("MAP_CENTER_LON", -95.71)
	if err != nil {
		return nil, err
	}
	zoom, err := parseZoom()
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FeedURL:     sharedcfg.EnvOrDefault("FEED_URL", DefaultFeedURL),
		FeedTimeout: feedTimeout,

		MapCenterLat:    centerLat,
		MapCenterLon:    centerLon,
		MapZoom:         zoom,
		TileURL:         sharedcfg.EnvOrDefault("TILE_URL", defaultTileURL),
		TileAttribution: sharedcfg.EnvOrDefault("TILE_ATTRIBUTION", defaultTileAttribution),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaBrokers:     brokers,
		KafkaMarkerTopic: sharedcfg.EnvOrDefault("KAFKA_MARKER_TOPIC", "quake-markers"),
	}

	if cfg.FeedURL == "" {
		return nil, errors.New("FEED_URL is required")
	}
	if cfg.MapCenterLat < -90 || cfg.MapCenterLat > 90 {
		return nil, errors.New("MAP_CENTER_LAT must be between -90 and 90")
	}
	if cfg.MapCenterLon < -180 || cfg.MapCenterLon > 180 {
		return nil, errors.New("MAP_CENTER_LON must be between -180 and 180")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.KafkaEnabled() && cfg.KafkaMarkerTopic == "" {
		return nil, errors.New("KAFKA_MARKER_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseZoom() (int, error) {
	s := os.Getenv("MAP_ZOOM")
	if s == "" {
		return 5, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 22 {
		return 0, errors.New("invalid MAP_ZOOM: must be an integer between 0 and 22")
	}
	return n, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
