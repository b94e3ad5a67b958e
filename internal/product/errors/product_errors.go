package producterrors

import (
	"net/http"

	"go-fieldforce/internal/shared/apperror"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)
	ErrSKUTaken = apperror.New(
		apperror.CodeConflict,
		"SKU already exists in this company",
		http.StatusConflict,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"No fields to update",
		http.StatusBadRequest,
	)
	ErrNoOpenPrice = apperror.New(
		apperror.CodeInvalidState,
		"Product has no active price",
		http.StatusBadRequest,
	)
)
