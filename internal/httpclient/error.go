package httpclient

import (
	goerrors "errors"
	"fmt"
	"net/http"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
)

// Error is a non-2xx response
type Error struct {
	StatusCode int
	Response   []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, string(e.Response))
}

// Is makes a 5xx response a transient error and anything else an http client error
func (e *Error) Is(target error) bool {
	if e.StatusCode >= http.StatusInternalServerError {
		return target == ierr.ErrTransient
	}
	return target == ierr.ErrHTTPClient
}

// NewError creates a new HTTP client error
func NewError(statusCode int, response []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Response:   response,
	}
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if goerrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
