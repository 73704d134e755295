package allowanceerrors

import (
	"net/http"

	"github.com/ymnkynp/monkey-timeoff/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid year",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be zero or positive",
		http.StatusBadRequest,
	)
	ErrEntitlementNotFound = apperror.New(
		apperror.CodeNotFound,
		"no entitlement configured for this employee and year",
		http.StatusNotFound,
	)
)
