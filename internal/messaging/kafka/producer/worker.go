package producer

import (
	"context"
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const relayBatchSize = 50

// RelayLeaveNotifications drains staged leave notifications on a fixed
// interval and publishes them. A failed publish is rescheduled with
// backoff; the leave transition that produced it is already committed and
// is never affected.
func RelayLeaveNotifications(
	ctx context.Context,
	outbox kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.relay")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("notification relay started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("notification relay stopped")
			return
		case <-ticker.C:
			if err := relayBatch(ctx, outbox, writer, log); err != nil {
				log.Error("relay notification batch failed", zap.Error(err))
			}
		}
	}
}

func relayBatch(
	ctx context.Context,
	outbox kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
) error {
	staged, err := outbox.ListPending(ctx, relayBatchSize)
	if err != nil {
		return err
	}

	if len(staged) == 0 {
		return nil
	}

	logger.Info("relaying staged notifications", zap.Int("count", len(staged)))

	for _, event := range staged {
		if err := publishNotification(ctx, writer, event); err != nil {
			logger.Error("publish notification failed",
				zap.String("outbox_id", event.ID),
				zap.String("kind", event.EventType),
				zap.String("leave_id", event.AggregateID),
				zap.Error(err),
			)
			_ = outbox.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := outbox.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark notification sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		logger.Info("notification relayed",
			zap.String("outbox_id", event.ID),
			zap.String("kind", event.EventType),
			zap.String("leave_id", event.AggregateID),
		)
	}

	return nil
}
