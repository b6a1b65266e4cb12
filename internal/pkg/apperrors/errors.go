package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// Code classifies a failure for HTTP mapping
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInvalidState Code = "INVALID_STATE"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a coded application error
type Error struct {
	code    Code
	message string
	cause   error
}

// New creates a new coded error
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf creates a new coded error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error
func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the error classification
func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

// Message returns the user-facing message
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// CodeOf extracts the code from any error, defaulting to internal
func CodeOf(err error) Code {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Code()
	}
	return CodeInternal
}

// MessageOf extracts the user-facing message from any error
func MessageOf(err error) string {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}

// HTTPStatus maps an error code to its HTTP status
func HTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeInvalidState:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromStore remaps storage-engine constraint violations to coded errors so
// handlers never leak SQLite error strings. Unrecognized errors come back as
// internal with the given message.
func FromStore(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}

	errText := err.Error()
	if strings.Contains(errText, "UNIQUE constraint failed") {
		return Wrap(CodeConflict, err, "Resource already exists")
	}
	if strings.Contains(errText, "FOREIGN KEY constraint failed") {
		return Wrap(CodeValidation, err, "Invalid reference to related resource")
	}

	return Wrap(CodeInternal, err, message)
}
