package leavetype

import (
	"time"

	"github.com/google/uuid"
)

type LeaveType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"size:32;not null;uniqueIndex"`
	Name string    `gorm:"size:255;not null"`

	// AutoApprove skips approver resolution for requests of this type;
	// such requests land APPROVED with no approval records.
	AutoApprove bool `gorm:"not null;default:false"`

	// Deductible controls whether approved days of this type count
	// against the yearly allowance.
	Deductible bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
