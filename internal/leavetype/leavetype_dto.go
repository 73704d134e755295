package leavetype

type UpsertLeaveTypeRequest struct {
	Code        string `json:"code" binding:"required,oneof=ANNUAL SICK UNPAID"`
	Name        string `json:"name" binding:"required"`
	AutoApprove bool   `json:"auto_approve"`
	Deductible  bool   `json:"deductible"`
}

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AutoApprove bool   `json:"auto_approve"`
	Deductible  bool   `json:"deductible"`
}
