package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	FullName     string
	Email        string `gorm:"uniqueIndex"`

	// StandinID points back into this table as a plain identifier, never
	// an owning reference. A->B->A cycles are permitted data; deleting an
	// employee leaves dangling standin ids that resolution treats as
	// unset.
	StandinID *uuid.UUID `gorm:"type:uuid"`

	Active           bool `gorm:"not null;default:true"`
	AutoApproveLeave bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
