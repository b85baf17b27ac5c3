package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to the gateway. Every failure a resolver can produce
// maps onto exactly one of these.
const (
	ErrCodeUnauthenticated = "unauthenticated"
	ErrCodeForbidden       = "forbidden"
	ErrCodeValidation      = "validation_error"
	ErrCodeNotFound        = "not_found"
	ErrCodeService         = "service_error"
	ErrCodeUnknownField    = "unknown_field"
	ErrCodeInternal        = "internal_server_error"
)

// AppError is the structured error passed from services and resolvers up to
// the gateway layer.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Unauthenticated(message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Code: ErrCodeUnauthenticated, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Code: ErrCodeForbidden, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

// ServiceFailure wraps an upstream failure. Client-class upstream statuses
// pass through so the caller sees what the backend rejected; server-class
// statuses and transport failures (upstreamStatus 0) surface as 502.
func ServiceFailure(upstreamStatus int, message string, err error) *AppError {
	status := http.StatusBadGateway
	if upstreamStatus >= 400 && upstreamStatus < 500 {
		status = upstreamStatus
	}
	return &AppError{StatusCode: status, Code: ErrCodeService, Message: message, Err: err}
}

func UnknownField(fieldName string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrCodeUnknownField,
		Message:    fmt.Sprintf("Unknown field: %s", fieldName),
	}
}

// CodeOf classifies an arbitrary error for logging and response mapping.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
