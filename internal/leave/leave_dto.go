package leave

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Comment   string `json:"comment"`
}

type DecideLeaveRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Comment  string `json:"comment"`
}

type ApprovalRecordResponse struct {
	ID             string  `json:"id"`
	ApproverID     string  `json:"approver_id"`
	ApproverRole   string  `json:"approver_role"`
	DecisionStatus string  `json:"decision_status"`
	DecidedAt      *string `json:"decided_at,omitempty"`
	Comment        string  `json:"comment,omitempty"`
}

type LeaveResponse struct {
	ID          string                   `json:"id"`
	EmployeeID  string                   `json:"employee_id"`
	LeaveType   string                   `json:"leave_type"`
	StartDate   string                   `json:"start_date"`
	EndDate     string                   `json:"end_date"`
	TotalDays   int                      `json:"total_days"`
	Comment     string                   `json:"comment,omitempty"`
	Status      string                   `json:"status"`
	LastActorID *string                  `json:"last_actor_id,omitempty"`
	Approvals   []ApprovalRecordResponse `json:"approvals,omitempty"`
}
