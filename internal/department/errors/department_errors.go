package departmenterrors

import (
	"net/http"

	"github.com/ymnkynp/monkey-timeoff/internal/shared/apperror"
)

var (
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidManagerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid manager id",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrManagerNotEligible = apperror.New(
		apperror.CodeInvalidInput,
		"manager employee does not exist or is deactivated",
		http.StatusBadRequest,
	)
)
