package cli

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitError       = 1 // General error (invalid input, missing results, failed validation)
	ExitNotFound    = 3 // Not found (features directory doesn't exist)
	ExitConfigError = 4 // Configuration error
)

// ExitCodeError is an error that carries an exit code.
type ExitCodeError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// NewExitCodeError creates a new ExitCodeError with the given code and message.
func NewExitCodeError(code int, message string) *ExitCodeError {
	return &ExitCodeError{Code: code, Message: message}
}

// WrapExitCodeError wraps an existing error with an exit code.
func WrapExitCodeError(code int, message string, err error) *ExitCodeError {
	return &ExitCodeError{Code: code, Message: message, Err: err}
}

// NotFoundError creates a not found error (exit code 3).
func NotFoundError(message string, err error) *ExitCodeError {
	return WrapExitCodeError(ExitNotFound, message, err)
}

// ConfigError creates a configuration error (exit code 4).
func ConfigError(message string) *ExitCodeError {
	return NewExitCodeError(ExitConfigError, message)
}

// GetExitCode returns the exit code from an error.
// If the error is an ExitCodeError, returns its code.
// Otherwise, returns 1 (general error).
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

// errorMessage renders err for stderr. Messages that already read as a
// complete user notice are printed as they are.
func errorMessage(err error) string {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) && exitErr.Err == nil && isNotice(exitErr.Message) {
		return exitErr.Message
	}
	return "Error: " + err.Error()
}

// noticePrefix marks messages carried over verbatim from the classic console
// output.
const noticePrefix = "⚠️  "

func isNotice(message string) bool {
	return strings.HasPrefix(message, noticePrefix)
}
