package config

import (
	"errors"
	"fmt"
)

// ConfigErrorType represents the type of settings error.
type ConfigErrorType int

const (
	// ConfigNotFound indicates the settings file was not found.
	ConfigNotFound ConfigErrorType = iota
	// ConfigInvalid indicates the settings file could not be read or decoded.
	ConfigInvalid
	// ConfigValidationFailed indicates a decoded setting has an invalid value.
	ConfigValidationFailed
)

// ConfigError represents a settings-related error.
type ConfigError struct {
	// Type is the error type.
	Type ConfigErrorType
	// Message is the error message.
	Message string
	// File is the settings file path.
	File string
	// Field is the setting that caused the error.
	Field string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	location := e.File
	if location == "" {
		location = "settings"
	}
	if e.Field != "" {
		location = fmt.Sprintf("%s [field: %s]", location, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("settings error in %s: %s: %v", location, e.Message, e.Cause)
	}
	return fmt.Sprintf("settings error in %s: %s", location, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigErrorWithField creates a new ConfigError with a field name.
func NewConfigErrorWithField(typ ConfigErrorType, file, field, message string) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Field:   field,
		Message: message,
	}
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(typ ConfigErrorType, file, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsNotFound reports whether err is a ConfigNotFound error.
func IsNotFound(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound
}
