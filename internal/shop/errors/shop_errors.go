package shoperrors

import (
	"net/http"

	"go-fieldforce/internal/shared/apperror"
)

var (
	ErrShopNotFound = apperror.New(
		apperror.CodeNotFound,
		"Shop not found",
		http.StatusNotFound,
	)
	ErrShopCodeTaken = apperror.New(
		apperror.CodeConflict,
		"Shop code already exists in this company",
		http.StatusConflict,
	)
	ErrRepNotAssigned = apperror.New(
		apperror.CodeForbidden,
		"Rep is not assigned to this shop",
		http.StatusForbidden,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"No fields to update",
		http.StatusBadRequest,
	)
	ErrAssigneeNotRep = apperror.New(
		apperror.CodeInvalidInput,
		"Assignee must be an active rep of this company",
		http.StatusBadRequest,
	)
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Rep assignment not found",
		http.StatusNotFound,
	)
)
