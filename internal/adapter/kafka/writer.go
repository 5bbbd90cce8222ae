package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-map/internal/config"
	"github.com/couchcryptid/quake-map/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces styled markers to a Kafka topic.
// It implements pipeline.MarkerSink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured marker topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaMarkerTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes all markers of one layer in a single
// WriteMessages call. Markers are keyed by event ID so repeated builds of the
// same feed land on the same partition.
func (w *Writer) Publish(ctx context.Context, markers []domain.Marker, fetchedAt time.Time) error {
	if len(markers) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(markers))
	for i := range markers {
		msg, err := serializeToMessage(markers[i], fetchedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write markers: %w", err)
	}
	w.logger.Debug("markers published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Marker into a Kafka message.
func serializeToMessage(marker domain.Marker, fetchedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(marker)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marker: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(marker.Event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "depth_color", Value: []byte(marker.Style.FillColor)},
			{Key: "fetched_at", Value: []byte(fetchedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
