package autherrors

import (
	"net/http"

	"go-fieldforce/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials",
		http.StatusUnauthorized,
	)
	ErrEmailNotVerified = apperror.New(
		apperror.CodeForbidden,
		"Email address has not been verified",
		http.StatusForbidden,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid or expired token",
		http.StatusBadRequest,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not issue session token",
		http.StatusInternalServerError,
	)
	ErrSlugTaken = apperror.New(
		apperror.CodeConflict,
		"Company slug is already in use",
		http.StatusConflict,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Email is already registered",
		http.StatusConflict,
	)
)
