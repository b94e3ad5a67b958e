package attendanceerrors

import (
	"net/http"

	"go-fieldforce/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"An open attendance session already exists; clock out first",
		http.StatusBadRequest,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"No open attendance session to clock out of",
		http.StatusBadRequest,
	)
)
