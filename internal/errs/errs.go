// Package errs defines the error kinds that reach API clients. Anything that is
// not an *Error is treated as internal and never shown to the caller.
package errs

import (
	"errors"
	"net/http"
	"strings"
)

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// Issue is a single schema violation.
type Issue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error is a client-facing error with its HTTP status.
type Error struct {
	Code    string
	Status  int
	Message string
	Issues  []Issue
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Forbidden"
	}
	return &Error{Code: CodeForbidden, Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: message}
}

// Validation builds a 422 carrying every issue. The message joins them as "field: message".
func Validation(issues ...Issue) *Error {
	parts := make([]string, 0, len(issues))
	for _, is := range issues {
		if is.Field != "" {
			parts = append(parts, is.Field+": "+is.Message)
		} else {
			parts = append(parts, is.Message)
		}
	}
	msg := strings.Join(parts, ", ")
	if msg == "" {
		msg = "Validation failed"
	}
	return &Error{Code: CodeValidation, Status: http.StatusUnprocessableEntity, Message: msg, Issues: issues}
}

// Internal is the only form of an unexpected error a client ever sees.
func Internal() *Error {
	return &Error{Code: CodeInternal, Status: http.StatusInternalServerError, Message: "Internal server error"}
}

// From returns err as an *Error, or Internal() with ok=false if it is not one.
func From(err error) (e *Error, ok bool) {
	if errors.As(err, &e) {
		return e, true
	}
	return Internal(), false
}
