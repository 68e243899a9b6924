// internal/pkg/apperror/apperror.go
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the type of application error
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// ValidationError represents an input validation error
	ValidationError
	// NotFoundError represents a resource not found error
	NotFoundError
	// AuthError represents an authentication error (missing/bad credentials)
	AuthError
	// ForbiddenError represents a rejected token or insufficient permissions
	ForbiddenError
	// ConflictError represents a duplicate unique field
	ConflictError
	// DatabaseError represents an error originating from the database
	DatabaseError
	// InternalError represents a generic internal server error
	InternalError
)

// AppError is the application error type. It wraps an optional underlying
// error so errors.Is/As can inspect the chain.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case ConflictError:
		return http.StatusConflict
	case DatabaseError, InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError with an explicit type.
func NewAppError(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewValidationError creates an input validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ValidationError, Message: message}
}

// NewNotFoundError creates a resource-not-found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: NotFoundError, Message: message}
}

// NewAuthError creates an authentication error
func NewAuthError(message string) *AppError {
	return &AppError{Type: AuthError, Message: message}
}

// NewForbiddenError creates an authorization error
func NewForbiddenError(message string) *AppError {
	return &AppError{Type: ForbiddenError, Message: message}
}

// NewConflictError creates a duplicate-resource error
func NewConflictError(message string) *AppError {
	return &AppError{Type: ConflictError, Message: message}
}

// NewDatabaseError creates a database error wrapping the driver failure
func NewDatabaseError(message string, err error) *AppError {
	return &AppError{Type: DatabaseError, Message: message, Err: err}
}

// NewInternalError creates a generic internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: InternalError, Message: message, Err: err}
}

// FromError coerces any error into an *AppError. Non-application errors are
// reported as InternalError so nothing crosses the HTTP boundary unformatted.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Type: InternalError, Message: "Internal server error", Err: err}
}
