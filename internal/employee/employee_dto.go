package employee

type CreateEmployeeRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
}

type AssignStandinRequest struct {
	// Empty standin_id clears the assignment.
	StandinID string `json:"standin_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	DepartmentID     *string `json:"department_id,omitempty"`
	StandinID        *string `json:"standin_id,omitempty"`
	Active           bool    `json:"active"`
	AutoApproveLeave bool    `json:"auto_approve_leave"`
}
