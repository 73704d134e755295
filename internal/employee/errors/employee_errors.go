package employeeerrors

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
	ErrInvalidStandinID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid standin id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrSelfStandinNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"an employee cannot be their own standin",
		http.StatusBadRequest,
	)
	ErrStandinNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"standin employee does not exist",
		http.StatusBadRequest,
	)
	ErrStandinInactive = apperror.New(
		apperror.CodeInvalidState,
		"standin employee is deactivated",
		http.StatusBadRequest,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
)
