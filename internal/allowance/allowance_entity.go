package allowance

import (
	"time"

	"github.com/google/uuid"
)

// Entitlement is the yearly leave budget granted to one employee.
// Usage is not stored: it is derived from the approved leaves ledger.
type Entitlement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entitlements_employee_year"`
	Year       int       `gorm:"type:int;not null;uniqueIndex:idx_entitlements_employee_year"`
	Days       int       `gorm:"type:int;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
