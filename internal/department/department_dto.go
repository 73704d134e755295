package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

type AssignManagerRequest struct {
	// Empty manager_id clears the assignment; employees of this
	// department then have no leave approver configured.
	ManagerID string `json:"manager_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ManagerID *string `json:"manager_id,omitempty"`
}
