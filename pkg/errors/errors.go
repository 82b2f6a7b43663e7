package errors

import (
	"fmt"
	"strings"
)

// ErrorCode classifies an application error
type ErrorCode string

const (
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// AppError represents a classified application error. Validation errors
// additionally carry the full list of field messages so handlers can
// surface them verbatim.
type AppError struct {
	Code    ErrorCode
	Message string
	Details []string
	Err     error
}

func (e *AppError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s [%s]", e.Code, e.Message, strings.Join(e.Details, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Validation creates a validation error carrying every failed-rule message.
func Validation(details []string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: "Validation failed", Details: details}
}

// NotFound creates a NotFound error
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Conflict creates a Conflict error
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

func code(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ""
}

// IsNotFound checks if error is NotFound
func IsNotFound(err error) bool { return code(err) == ErrCodeNotFound }

// IsConflict checks if error is Conflict
func IsConflict(err error) bool { return code(err) == ErrCodeConflict }

// IsValidation checks if error is a validation failure
func IsValidation(err error) bool { return code(err) == ErrCodeValidation }

// IsStoreUnavailable checks if error is StoreUnavailable
func IsStoreUnavailable(err error) bool { return code(err) == ErrCodeStoreUnavailable }

// ValidationDetails returns the field messages of a validation error,
// or nil for any other error.
func ValidationDetails(err error) []string {
	if appErr, ok := err.(*AppError); ok && appErr.Code == ErrCodeValidation {
		return appErr.Details
	}
	return nil
}
