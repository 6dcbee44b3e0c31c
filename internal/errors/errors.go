package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound          = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists     = new(ErrCodeAlreadyExists, "resource already exists")
	ErrVersionConflict   = new(ErrCodeVersionConflict, "version conflict")
	ErrValidation        = new(ErrCodeValidation, "validation error")
	ErrSeatLimitExceeded = new(ErrCodeSeatLimitExceeded, "seat limit exceeded")
	ErrInvalidOperation  = new(ErrCodeInvalidOperation, "invalid operation")
	ErrPermissionDenied  = new(ErrCodePermissionDenied, "permission denied")
	ErrProvider          = new(ErrCodeProvider, "payment provider error")
	ErrTransient         = new(ErrCodeTransient, "transient error")
	ErrHTTPClient        = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase          = new(ErrCodeDatabase, "database error")
	ErrSystem            = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes, checked in order
	statusCodes = []struct {
		err    error
		status int
	}{
		{ErrSeatLimitExceeded, http.StatusConflict},
		{ErrValidation, http.StatusBadRequest},
		{ErrInvalidOperation, http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrVersionConflict, http.StatusConflict},
		{ErrPermissionDenied, http.StatusForbidden},
		{ErrProvider, http.StatusPaymentRequired},
		{ErrTransient, http.StatusServiceUnavailable},
		{ErrHTTPClient, http.StatusBadGateway},
		{ErrDatabase, http.StatusInternalServerError},
		{ErrSystem, http.StatusInternalServerError},
	}
)

const (
	ErrCodeHTTPClient        = "http_client_error"
	ErrCodeSystemError       = "system_error"
	ErrCodeNotFound          = "not_found"
	ErrCodeAlreadyExists     = "already_exists"
	ErrCodeVersionConflict   = "version_conflict"
	ErrCodeValidation        = "validation_error"
	ErrCodeSeatLimitExceeded = "seat_limit_exceeded"
	ErrCodeInvalidOperation  = "invalid_operation"
	ErrCodePermissionDenied  = "permission_denied"
	ErrCodeProvider          = "provider_error"
	ErrCodeTransient         = "transient_error"
	ErrCodeDatabase          = "database_error"
)

// Kind is the caller facing classification of an error.
type Kind string

const (
	KindValidation        Kind = "ValidationError"
	KindSeatLimitExceeded Kind = "SeatLimitExceeded"
	KindProvider          Kind = "ProviderError"
	KindTransient         Kind = "TransientError"
	KindNotFound          Kind = "NotFoundError"
	KindPermission        Kind = "PermissionError"
	KindConflict          Kind = "ConflictError"
	KindInternal          Kind = "InternalError"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsVersionConflict checks if an error is a version conflict error
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

// IsValidation checks if an error is a validation error.
// A seat limit rejection is a validation error caught before any write.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrSeatLimitExceeded)
}

// IsSeatLimitExceeded checks if an error is a seat limit error
func IsSeatLimitExceeded(err error) bool {
	return errors.Is(err, ErrSeatLimitExceeded)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsProvider checks if an error was raised by a payment provider
func IsProvider(err error) bool {
	return errors.Is(err, ErrProvider)
}

// IsTransient checks if an error is worth retrying by the caller
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// KindOf classifies err into the error taxonomy exposed to clients.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSeatLimitExceeded):
		return KindSeatLimitExceeded
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidOperation):
		return KindValidation
	case errors.Is(err, ErrProvider):
		return KindProvider
	case errors.Is(err, ErrTransient), errors.Is(err, ErrHTTPClient):
		return KindTransient
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPermissionDenied):
		return KindPermission
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrVersionConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

func HTTPStatusFromErr(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.status
		}
	}
	return http.StatusInternalServerError
}

// DisplayMessage returns the first hint attached to err, or its message when it has none
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return err.Error()
}
