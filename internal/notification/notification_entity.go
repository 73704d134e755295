package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the in-app inbox entry materialized from a
// LeaveNotification event. The composite unique index makes redelivered
// events idempotent.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_notifications_event"`
	LeaveID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_event"`
	Kind        string    `gorm:"size:64;not null;uniqueIndex:idx_notifications_event"`
	OccurredAt  time.Time `gorm:"not null;uniqueIndex:idx_notifications_event"`

	Message string     `gorm:"type:text;not null"`
	ReadAt  *time.Time `gorm:""`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
