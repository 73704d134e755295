package notification

type NotificationResponse struct {
	ID        string  `json:"id"`
	LeaveID   string  `json:"leave_id"`
	Kind      string  `json:"kind"`
	Message   string  `json:"message"`
	ReadAt    *string `json:"read_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}
