package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusNew          = "NEW"
	StatusApproved     = "APPROVED"
	StatusRejected     = "REJECTED"
	StatusPendedRevoke = "PENDED_REVOKE"
	StatusCancelled    = "CANCELLED"
)

const (
	RoleManager = "MANAGER"
	RoleStandin = "STANDIN"
)

const (
	DecisionPending  = "PENDING"
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

// Leave.Status is a cached projection of the approval record set. It is
// recomputed from all records inside the same transaction as every record
// mutation, never patched in isolation.
type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Comment   string    `gorm:"type:text"`

	Status string `gorm:"type:varchar(20);not null;default:'NEW';index:idx_leaves_status"`

	// LastActorID predates per-approver records and is kept in sync for
	// consumers that still read it.
	LastActorID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}

// ApprovalRecord holds one required approver's decision on one leave.
// At most one record exists per (leave, role); the uniqueIndex backs that.
// Auto-approved leaves have no records at all.
type ApprovalRecord struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_approval_records_leave_role;index:idx_approval_records_leave"`

	ApproverID   uuid.UUID `gorm:"type:uuid;not null;index:idx_approval_records_approver"`
	ApproverRole string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_approval_records_leave_role"`

	DecisionStatus string     `gorm:"type:varchar(10);not null;default:'PENDING'"`
	DecidedAt      *time.Time `gorm:"type:timestamptz"`
	Comment        string     `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
