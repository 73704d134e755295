package producer

import (
	"context"

	"github.com/ymnkynp/monkey-timeoff/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publishNotification writes one staged leave notification. The leave id
// keys the message so every notification about one request lands on the
// same partition, in decision order. The kind and request id travel as
// headers so consumers can route without decoding the payload.
func publishNotification(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "kind", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}
