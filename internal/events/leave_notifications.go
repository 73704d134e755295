package events

import "time"

const LeaveNotificationTopic = "hr.leave.notifications.v1"

// Notification kinds consumed by the mailer downstream.
const (
	NotificationSubmissionConfirmed = "submission_confirmed"
	NotificationApprovalNeeded      = "approval_needed"
	NotificationPartiallyApproved   = "partially_approved"
	NotificationFullyApproved       = "fully_approved"
	NotificationRejected            = "rejected"
	NotificationRevokeRequested     = "revoke_requested"
	NotificationAutoApproved        = "auto_approved"
)

// KnownNotificationKind reports whether kind is one this service emits.
// The outbox rejects anything else before it reaches the broker.
func KnownNotificationKind(kind string) bool {
	switch kind {
	case NotificationSubmissionConfirmed,
		NotificationApprovalNeeded,
		NotificationPartiallyApproved,
		NotificationFullyApproved,
		NotificationRejected,
		NotificationRevokeRequested,
		NotificationAutoApproved:
		return true
	}
	return false
}

// LeaveNotification is the outbox payload for a single recipient. Delivery
// is asynchronous; a failed send never affects the leave state it reports.
type LeaveNotification struct {
	Kind            string    `json:"kind"`
	RequestID       string    `json:"request_id,omitempty"`
	RecipientID     string    `json:"recipient_id"`
	LeaveID         string    `json:"leave_id"`
	EmployeeID      string    `json:"employee_id"`
	LeaveType       string    `json:"leave_type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	ApproverIDs     []string  `json:"approver_ids,omitempty"`
	PendingCount    int       `json:"pending_count,omitempty"`
	ConflictWarning string    `json:"conflict_warning,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
