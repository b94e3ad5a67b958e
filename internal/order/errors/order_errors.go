package ordererrors

import (
	"net/http"

	"go-fieldforce/internal/shared/apperror"
)

var (
	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown order status",
		http.StatusBadRequest,
	)
	ErrOrderFinal = apperror.New(
		apperror.CodeInvalidState,
		"Closed or cancelled orders cannot change status",
		http.StatusBadRequest,
	)
	ErrProductUnavailable = apperror.New(
		apperror.CodeInvalidInput,
		"One or more products have no active price",
		http.StatusBadRequest,
	)
)
