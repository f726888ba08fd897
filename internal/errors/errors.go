package errors

import (
	"errors"
	"fmt"
)

// Domain-specific error types
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates a name or key collision
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrPermissionDenied indicates an ownership mismatch
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotDraft indicates an update-draft call on mail outside DRAFTS
	ErrNotDraft = errors.New("mail is not a draft")

	// ErrUserNotFound indicates the user was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrMailNotFound indicates the mail was not found
	ErrMailNotFound = errors.New("mail not found")

	// ErrFolderNotFound indicates the folder is not in the user's list
	ErrFolderNotFound = errors.New("folder not found")

	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal server error")
)

// Error codes for API responses
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidInput       = "INVALID_INPUT"
	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeNotDraft           = "NOT_A_DRAFT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(err error, message string, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrMailNotFound) ||
		errors.Is(err, ErrFolderNotFound)
}

// IsAlreadyExists checks if the error is a collision error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotDraft)
}

// IsPermissionDenied checks if the error is an ownership error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// GetErrorCode returns the appropriate error code for an error
func GetErrorCode(err error) string {
	switch {
	case IsNotFound(err):
		return CodeNotFound
	case IsAlreadyExists(err):
		return CodeAlreadyExists
	case errors.Is(err, ErrNotDraft):
		return CodeNotDraft
	case IsInvalidInput(err):
		return CodeInvalidInput
	case IsPermissionDenied(err):
		return CodePermissionDenied
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	default:
		return CodeInternalError
	}
}
