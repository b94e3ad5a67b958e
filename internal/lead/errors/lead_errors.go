package leaderrors

import (
	"net/http"

	"go-fieldforce/internal/shared/apperror"
)

var (
	ErrLeadNotFound = apperror.New(
		apperror.CodeNotFound,
		"Lead not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown lead status",
		http.StatusBadRequest,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"No fields to update",
		http.StatusBadRequest,
	)
)
