package visiterrors

import (
	"net/http"

	"go-fieldforce/internal/shared/apperror"
)

var (
	ErrVisitNotFound = apperror.New(
		apperror.CodeNotFound,
		"Visit not found",
		http.StatusNotFound,
	)
	ErrNotAssignedToShop = apperror.New(
		apperror.CodeForbidden,
		"You are not assigned to this shop",
		http.StatusForbidden,
	)
	ErrVisitAlreadyOpen = apperror.New(
		apperror.CodeInvalidState,
		"An open visit already exists; end it first",
		http.StatusBadRequest,
	)
	ErrVisitAlreadyEnded = apperror.New(
		apperror.CodeInvalidState,
		"Visit has already ended",
		http.StatusBadRequest,
	)
)
