package leave

import (
	leaveerrors "github.com/ymnkynp/monkey-timeoff/internal/leave/errors"

	"github.com/google/uuid"
)

// Approver is one required decision slot resolved for a leave request.
type Approver struct {
	ID   uuid.UUID
	Role string
}

// ResolveApprovers determines the required approver set for an employee.
// The department manager is always required; a configured standin is added
// as a second approver when the feature is enabled and the standin is a
// distinct person. A standin equal to the manager collapses to the single
// MANAGER slot, so the manager never approves the same leave twice.
//
// An approver equal to the employee must never appear in the result.
// Self-standin is rejected when the standin is assigned; a manager who is
// their own manager resolves to no usable approver and fails the same way
// a missing manager does.
//
// Pure function of its inputs. Standin deactivation is handled by the
// caller, which passes standinID=nil to fall back to manager-only.
func ResolveApprovers(employeeID, managerID uuid.UUID, standinID *uuid.UUID, standinEnabled bool) ([]Approver, error) {
	if managerID == uuid.Nil || managerID == employeeID {
		return nil, leaveerrors.ErrNoManagerConfigured
	}

	approvers := []Approver{{ID: managerID, Role: RoleManager}}

	if !standinEnabled || standinID == nil {
		return approvers, nil
	}
	sid := *standinID
	if sid == uuid.Nil || sid == managerID || sid == employeeID {
		return approvers, nil
	}

	return append(approvers, Approver{ID: sid, Role: RoleStandin}), nil
}
