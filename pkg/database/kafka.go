package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"drift_chronicles_service/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NewKafkaWriterWithRetry build a Kafka writer and probe the brokers with a test message
func NewKafkaWriterWithRetry(k KafkaConnection) (*kafka.Writer, error) {
	var writer *kafka.Writer
	var err error

	for attempt := 1; attempt <= k.RetryCount; attempt++ {
		writer = kafka.NewWriter(kafka.WriterConfig{
			Brokers:  k.Brokers,
			Topic:    k.Topic,
			Balancer: &kafka.LeastBytes{},
		})

		err = writer.WriteMessages(context.Background(), kafka.Message{
			Key:   []byte("ping"),
			Value: []byte("ping"),
		})
		if err == nil {
			logger.Log.Info("Kafka writer ready", zap.Int("attempt", attempt))
			return writer, nil
		}

		logger.Log.Warn("Kafka writer connect failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max", k.RetryCount),
			zap.Error(err),
		)
		writer.Close()
		time.Sleep(k.RetryInterval * time.Second)
	}

	return nil, fmt.Errorf("failed to build kafka writer after %d attempts: %v", k.RetryCount, err)
}

// KafkaPublisher publish domain events onto the configured topic.
// A nil writer disables publishing.
type KafkaPublisher struct {
	writer *kafka.Writer
}

type eventEnvelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
	At      int64       `json:"at"`
}

// NewKafkaPublisher create a KafkaPublisher
func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish write one event message, key is the event name
func (p *KafkaPublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	if p.writer == nil {
		return nil
	}

	data, err := json.Marshal(eventEnvelope{
		Event:   event,
		Payload: payload,
		At:      time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event),
		Value: data,
	})
}
