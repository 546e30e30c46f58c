// Package errors provides typed errors for wealthfolio.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error classes the API distinguishes.
var (
	// ErrInputFormat indicates an unrecognized file extension or an
	// unparsable workbook. Ingestion aborts with no partial data.
	ErrInputFormat = errors.New("input format error")

	// ErrEmptyWorkbook indicates a structurally valid file that produced
	// zero assets and zero plans.
	ErrEmptyWorkbook = errors.New("no data in workbook")

	// ErrRemoteFetch indicates a failed download of a shared spreadsheet.
	ErrRemoteFetch = errors.New("remote fetch failed")

	// ErrExternalService indicates the AI service call failed or
	// returned no usable text.
	ErrExternalService = errors.New("external service error")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates a malformed request.
	ErrValidation = errors.New("validation error")
)

// AppError is a structured application error.
type AppError struct {
	// Type is the error class (sentinel error).
	Type error
	// Message is the user-facing error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error class.
func (e *AppError) Unwrap() error {
	return e.Type
}

// Is checks if this error matches the target.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Type, target)
}

// New creates a new AppError.
func New(errType error, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(errType error, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}
