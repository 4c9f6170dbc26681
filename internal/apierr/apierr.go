// Package apierr carries application-level failures with an HTTP-like status
// so callers can branch the same way whether the remote API or the local
// store produced them.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"course-catalog/internal/httpx"
)

const (
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeValidation = "validation"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

// Status extracts the status marker from a local *Error or a remote
// *httpx.HTTPError. It returns 0 when err carries none.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	var he *httpx.HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool { return Status(err) == http.StatusNotFound }

func IsConflict(err error) bool { return Status(err) == http.StatusConflict }

// Describe renders err as the short message shown to a user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case httpx.IsNetworkError(err):
		return "Network unreachable."
	case IsNotFound(err):
		return "Not found."
	case IsConflict(err):
		return "Already exists."
	}
	var ae *Error
	if errors.As(err, &ae) && ae.Code == CodeValidation && ae.Err != nil {
		return ae.Err.Error()
	}
	if s := Status(err); s != 0 {
		return fmt.Sprintf("Server error %d", s)
	}
	return "Unexpected error"
}
