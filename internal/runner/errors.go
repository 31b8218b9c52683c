package runner

import (
	"errors"
	"fmt"
)

// RunnerErrorType represents the kind of invocation failure.
type RunnerErrorType int

const (
	// ExecutableNotFound indicates devinit could not be located or started.
	// No process ran.
	ExecutableNotFound RunnerErrorType = iota
	// ConfigNotFound indicates devinit exited because it found no devinitrc.
	ConfigNotFound
	// ProcessFailed indicates devinit exited with a non-zero status.
	ProcessFailed
	// MalformedOutput indicates stdout was not the expected JSON shape.
	MalformedOutput
	// Timeout indicates the invocation exceeded its deadline.
	Timeout
)

// String returns a readable name for the error type.
func (t RunnerErrorType) String() string {
	switch t {
	case ExecutableNotFound:
		return "executable not found"
	case ConfigNotFound:
		return "config not found"
	case ProcessFailed:
		return "process failed"
	case MalformedOutput:
		return "malformed output"
	case Timeout:
		return "timeout"
	default:
		return fmt.Sprintf("RunnerErrorType(%d)", int(t))
	}
}

// exitNoConfig is the devinit exit status for a missing configuration file.
const exitNoConfig = 2

// RunnerError represents a failure at the subprocess boundary.
type RunnerError struct {
	// Type is the error type.
	Type RunnerErrorType
	// Message is the error message.
	Message string
	// Command is the invocation as a shell-quoted string, if known.
	Command string
	// Stderr is the captured standard error of the process.
	Stderr string
	// ExitCode is the process exit status, or -1 when it did not exit normally.
	ExitCode int
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *RunnerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *RunnerError) Unwrap() error {
	return e.Cause
}

// NewRunnerError creates a new RunnerError.
func NewRunnerError(typ RunnerErrorType, message string, cause error) *RunnerError {
	return &RunnerError{
		Type:     typ,
		Message:  message,
		ExitCode: -1,
		Cause:    cause,
	}
}

// NewMalformedOutputError creates a MalformedOutput error for stdout that did
// not decode as expected.
func NewMalformedOutputError(expected string, cause error) *RunnerError {
	return NewRunnerError(MalformedOutput, fmt.Sprintf("devinit output is not %s", expected), cause)
}

// IsType reports whether err is, or wraps, a RunnerError of type typ.
func IsType(err error, typ RunnerErrorType) bool {
	var re *RunnerError
	if errors.As(err, &re) {
		return re.Type == typ
	}
	return false
}
