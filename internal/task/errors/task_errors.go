package taskerrors

import (
	"net/http"

	"go-fieldforce/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown task status",
		http.StatusBadRequest,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"No fields to update",
		http.StatusBadRequest,
	)
	ErrNotAssignee = apperror.New(
		apperror.CodeForbidden,
		"Only the assigned rep can complete this task",
		http.StatusForbidden,
	)
	ErrTaskNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Only pending tasks can be completed",
		http.StatusBadRequest,
	)
)
