package leaveerrors

import (
	"net/http"

	"github.com/ymnkynp/monkey-timeoff/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be APPROVE or REJECT",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrNoManagerConfigured = apperror.New(
		apperror.CodeInvalidState,
		"no manager configured for employee",
		http.StatusBadRequest,
	)
	ErrNotAnApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not an approver of this leave",
		http.StatusForbidden,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"this approval has already been decided",
		http.StatusConflict,
	)
	ErrManagerOnlyAction = apperror.New(
		apperror.CodeForbidden,
		"only the department manager may act on a revoke",
		http.StatusForbidden,
	)
	ErrNotLeaveOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requesting employee may cancel this leave",
		http.StatusForbidden,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusBadRequest,
	)
	ErrDuplicateApprovalRecord = apperror.New(
		apperror.CodeConflict,
		"approval record already exists for this leave and role",
		http.StatusConflict,
	)
)
