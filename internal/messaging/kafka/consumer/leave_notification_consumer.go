package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ymnkynp/monkey-timeoff/internal/events"
	"github.com/ymnkynp/monkey-timeoff/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveNotifications drains the leave notification topic and
// materializes inbox rows. Malformed payloads are committed and dropped;
// transient persistence failures leave the message uncommitted for
// redelivery.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notifications")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		if !recordMessage(ctx, msg.Value, notificationService, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
		}
	}
}

// recordMessage reports whether the message is finished and safe to commit.
// Payloads that can never be recorded (broken JSON, non-uuid ids) are
// finished by definition; only transient persistence failures are worth a
// redelivery.
func recordMessage(
	ctx context.Context,
	raw []byte,
	notificationService notification.Service,
	log *zap.Logger,
) bool {
	var event events.LeaveNotification
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Error("decode leave notification failed, dropping", zap.Error(err))
		return true
	}

	if err := notificationService.RecordEvent(ctx, event); err != nil {
		if errors.Is(err, notification.ErrMalformedEvent) {
			log.Error("malformed leave notification dropped",
				zap.String("kind", event.Kind),
				zap.Error(err),
			)
			return true
		}
		log.Error("record leave notification failed",
			zap.String("recipient_id", event.RecipientID),
			zap.String("leave_id", event.LeaveID),
			zap.String("kind", event.Kind),
			zap.Error(err),
		)
		return false
	}

	return true
}
