package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/events"
	notificationerrors "github.com/ymnkynp/monkey-timeoff/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMalformedEvent marks payloads that can never be recorded no matter how
// often they are redelivered; the consumer commits and drops them.
var ErrMalformedEvent = errors.New("malformed leave notification event")

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	// RecordEvent materializes a consumed leave notification into the
	// recipient's inbox. Redeliveries are dropped silently.
	RecordEvent(ctx context.Context, event events.LeaveNotification) error
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) (NotificationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) RecordEvent(ctx context.Context, event events.LeaveNotification) error {
	recipientUUID, err := uuid.Parse(event.RecipientID)
	if err != nil {
		return fmt.Errorf("%w: recipient id %q", ErrMalformedEvent, event.RecipientID)
	}
	leaveUUID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		return fmt.Errorf("%w: leave id %q", ErrMalformedEvent, event.LeaveID)
	}

	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientUUID,
		LeaveID:     leaveUUID,
		Kind:        event.Kind,
		OccurredAt:  event.OccurredAt,
		Message:     renderMessage(event),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		if err == notificationerrors.ErrDuplicateNotification {
			s.logger.Debug("duplicate notification dropped",
				zap.String("recipient_id", event.RecipientID),
				zap.String("leave_id", event.LeaveID),
				zap.String("kind", event.Kind),
			)
			return nil
		}
		return err
	}

	s.logger.Info("notification recorded",
		zap.String("recipient_id", event.RecipientID),
		zap.String("leave_id", event.LeaveID),
		zap.String("kind", event.Kind),
	)
	return nil
}

func (s *service) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindByRecipient(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, err
	}
	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, mapToResponse(n))
	}
	return out, nil
}

func (s *service) MarkRead(ctx context.Context, recipientID, notificationID string) (NotificationResponse, error) {
	if _, err := uuid.Parse(notificationID); err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidNotificationID
	}

	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return NotificationResponse{}, err
	}

	// A recipient can only touch their own inbox.
	if n.RecipientID.String() != recipientID {
		return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
	}

	if n.ReadAt == nil {
		now := time.Now().UTC()
		n.ReadAt = &now
		if err := s.repo.Update(ctx, n); err != nil {
			return NotificationResponse{}, err
		}
	}

	return mapToResponse(*n), nil
}

func renderMessage(event events.LeaveNotification) string {
	period := fmt.Sprintf("%s to %s", event.StartDate, event.EndDate)

	switch event.Kind {
	case events.NotificationSubmissionConfirmed:
		msg := fmt.Sprintf("Your %s leave request for %s was submitted and is awaiting approval.", event.LeaveType, period)
		if event.ConflictWarning != "" {
			msg += " " + event.ConflictWarning
		}
		return msg
	case events.NotificationApprovalNeeded:
		return fmt.Sprintf("A %s leave request for %s needs your decision.", event.LeaveType, period)
	case events.NotificationPartiallyApproved:
		return fmt.Sprintf("Your %s leave request for %s was approved by one approver; %d approval(s) still pending.", event.LeaveType, period, event.PendingCount)
	case events.NotificationFullyApproved:
		return fmt.Sprintf("Your %s leave request for %s is fully approved.", event.LeaveType, period)
	case events.NotificationRejected:
		return fmt.Sprintf("Your %s leave request for %s was rejected.", event.LeaveType, period)
	case events.NotificationRevokeRequested:
		return fmt.Sprintf("Revocation was requested for your approved %s leave (%s).", event.LeaveType, period)
	case events.NotificationAutoApproved:
		return fmt.Sprintf("The %s leave request for %s was approved automatically.", event.LeaveType, period)
	default:
		return fmt.Sprintf("Update on the %s leave request for %s.", event.LeaveType, period)
	}
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		LeaveID:   n.LeaveID.String(),
		Kind:      n.Kind,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		readAt := n.ReadAt.UTC().Format(time.RFC3339)
		resp.ReadAt = &readAt
	}
	return resp
}
