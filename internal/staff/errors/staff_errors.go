package stafferrors

import (
	"net/http"

	"go-fieldforce/internal/shared/apperror"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"Staff member not found",
		http.StatusNotFound,
	)
	ErrStaffLimitReached = apperror.New(
		apperror.CodeConflict,
		"Staff limit for the current plan has been reached",
		http.StatusConflict,
	)
	ErrMembershipExists = apperror.New(
		apperror.CodeConflict,
		"This user is already a member of the company",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown role",
		http.StatusBadRequest,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"No fields to update",
		http.StatusBadRequest,
	)
	ErrAlreadyInactive = apperror.New(
		apperror.CodeInvalidState,
		"Staff member is already inactive",
		http.StatusBadRequest,
	)
	ErrReplacementInvalid = apperror.New(
		apperror.CodeInvalidInput,
		"Replacement must be a different active rep of the same company",
		http.StatusBadRequest,
	)
)
