package autherrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(apperror.CodeUnauthorized, "Invalid username or password", http.StatusUnauthorized)
	ErrTokenNotFound      = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken       = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired       = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	ErrAccountInactive    = apperror.New(apperror.CodeUnauthorized, "Account is not active", http.StatusUnauthorized)
	ErrUserNotFound       = apperror.New(apperror.CodeNotFound, "User not found", http.StatusNotFound)
	ErrForbidden          = apperror.New(apperror.CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)
	ErrTokenGeneration    = apperror.New(apperror.CodeInternalError, "Failed to issue token", http.StatusInternalServerError)
)
