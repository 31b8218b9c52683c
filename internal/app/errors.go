package app

import (
	"errors"
	"fmt"
)

// ErrInputCancelled is returned when a variable prompt is dismissed without
// a value. It is not a failure from the user's point of view.
var ErrInputCancelled = errors.New("input cancelled")

// IsCancelled reports whether err is, or wraps, ErrInputCancelled.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrInputCancelled)
}

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ValidationFailed indicates the request was invalid.
	ValidationFailed AppErrorType = iota
	// TemplateSelectionFailed indicates no template could be chosen.
	TemplateSelectionFailed
	// PromptFailed indicates the prompting collaborator failed.
	PromptFailed
)

// AppError represents an application-layer error. Failures at the devinit
// boundary are not wrapped in AppError; they reach callers unchanged.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewTemplateSelectionError creates a template selection error.
func NewTemplateSelectionError(message string, cause error) *AppError {
	return NewAppError(TemplateSelectionFailed, message, cause)
}

// NewPromptError creates a prompt error.
func NewPromptError(message string, cause error) *AppError {
	return NewAppError(PromptFailed, message, cause)
}
