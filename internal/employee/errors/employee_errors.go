package employeeerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee code already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeValidation,
		"invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDocumentType = apperror.New(
		apperror.CodeValidation,
		"document_type must be resume or certificates",
		http.StatusBadRequest,
	)
	ErrOfferLetterNotFound = apperror.New(
		apperror.CodeNotFound,
		"offer letter not found",
		http.StatusNotFound,
	)
	ErrDocumentsUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"document storage is not configured",
		http.StatusServiceUnavailable,
	)
)
