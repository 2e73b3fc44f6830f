package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode classifies application failures.
type ErrorCode int

const (
	ErrorCode_INTERNAL ErrorCode = iota
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_EMPTY_INPUT
	ErrorCode_BACKEND
	ErrorCode_PARSE
	ErrorCode_IO
)

// String returns the code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_EMPTY_INPUT:
		return "EMPTY_INPUT"
	case ErrorCode_BACKEND:
		return "BACKEND"
	case ErrorCode_PARSE:
		return "PARSE"
	case ErrorCode_IO:
		return "IO"
	}
	return "UNKNOWN"
}

// AppError là custom error type cho application
type AppError struct {
	Raw       error
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// ErrInternal wraps an unexpected failure.
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal error",
		Timestamp: time.Now(),
	}
}

// ErrInvalidArgument reports a caller mistake.
func ErrInvalidArgument(message string) AppError {
	return AppError{
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// ErrEmptyInput reports blank input that short-circuits a stage.
func ErrEmptyInput(what string) AppError {
	return AppError{
		Code:      ErrorCode_EMPTY_INPUT,
		Message:   fmt.Sprintf("%s is empty", what),
		Timestamp: time.Now(),
	}
}

// ErrBackend wraps a completion or search backend failure.
func ErrBackend(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_BACKEND,
		Message:   "Backend call failed",
		Timestamp: time.Now(),
	}
}

// ErrParse wraps a malformed backend reply.
func ErrParse(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_PARSE,
		Message:   "Failed to parse backend response",
		Timestamp: time.Now(),
	}
}

// ErrIO wraps a filesystem failure.
func ErrIO(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_IO,
		Message:   "Filesystem operation failed",
		Timestamp: time.Now(),
	}
}

// CodeOf returns the ErrorCode carried by err, or ErrorCode_INTERNAL.
func CodeOf(err error) ErrorCode {
	var ae AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrorCode_INTERNAL
}
