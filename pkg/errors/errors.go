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
	ErrCanceled     ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Path resolution errors
	ErrHomeNotFound   ErrorCode = "HOME_NOT_FOUND"
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"

	// Link errors
	ErrLinkFailed    ErrorCode = "LINK_FAILED"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkExists ErrorCode = "SYMLINK_EXISTS"

	// Backup errors
	ErrBackupCreate  ErrorCode = "BACKUP_CREATE"
	ErrBackupLog     ErrorCode = "BACKUP_LOG"
	ErrBackupLock    ErrorCode = "BACKUP_LOCK"
	ErrNoBackups     ErrorCode = "NO_BACKUPS"
	ErrRestoreFailed ErrorCode = "RESTORE_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// DotfilerError represents a structured error with code and details
type DotfilerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotfilerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotfilerError) Unwrap() error {
	return e.Wrapped
}

// Is reports a match for any DotfilerError carrying the same code
func (e *DotfilerError) Is(target error) bool {
	var targetErr *DotfilerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotfilerError with the given code and message
func New(code ErrorCode, message string) *DotfilerError {
	return &DotfilerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotfilerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotfilerError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a DotfilerError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *DotfilerError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotfilerError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *DotfilerError) WithDetail(key string, value interface{}) *DotfilerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dErr *DotfilerError
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotfilerError
func GetErrorCode(err error) ErrorCode {
	var dErr *DotfilerError
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotfilerError
func GetErrorDetails(err error) map[string]interface{} {
	var dErr *DotfilerError
	if errors.As(err, &dErr) {
		return dErr.Details
	}
	return nil
}
