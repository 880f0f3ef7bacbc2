package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigValid    ErrorCode = "CONFIG_INVALID"
	ErrConfigSave     ErrorCode = "CONFIG_SAVE"
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileCreate    ErrorCode = "FILE_CREATE"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"

	// Export errors
	ErrXMLParse     ErrorCode = "XML_PARSE"
	ErrVerifyFailed ErrorCode = "VERIFY_FAILED"
)

// ExportError represents a structured error with code and details
type ExportError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ExportError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ExportError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ExportError) Is(target error) bool {
	var targetErr *ExportError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ExportError with the given code and message
func New(code ErrorCode, message string) *ExportError {
	return &ExportError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ExportError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ExportError {
	return &ExportError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an ExportError
func Wrap(err error, code ErrorCode, message string) *ExportError {
	if err == nil {
		return nil
	}
	return &ExportError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ExportError {
	if err == nil {
		return nil
	}
	return &ExportError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ExportError) WithDetail(key string, value interface{}) *ExportError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var exportErr *ExportError
		if !errors.As(err, &exportErr) {
			return false
		}
		if exportErr.Code == code {
			return true
		}
		err = exportErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an ExportError
func GetErrorCode(err error) ErrorCode {
	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return exportErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an ExportError
func GetErrorDetails(err error) map[string]interface{} {
	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return exportErr.Details
	}
	return nil
}
