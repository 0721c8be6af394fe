package documenterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeValidation,
		"file type not allowed",
		http.StatusBadRequest,
	)
	ErrEmptyFile = apperror.New(
		apperror.CodeValidation,
		"no file selected",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeValidation,
		"file exceeds the upload size limit",
		http.StatusBadRequest,
	)
	ErrInvalidDocumentType = apperror.New(
		apperror.CodeValidation,
		"invalid document type",
		http.StatusBadRequest,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)
)
