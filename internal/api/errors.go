package api

import (
	"fmt"
	"net/http"
)

// Error represents an API error
type Error struct {
	Status  int
	Message string
}

// NewError creates a new API error
func NewError(status int, message string) *Error {
	return &Error{
		Status:  status,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// BadRequest builds a 400 error
func BadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

// Unauthorized builds a 401 error
func Unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

// Forbidden builds a 403 error
func Forbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

// NotFound builds a 404 error
func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// Internal builds a 500 error
func Internal(message string) *Error {
	return NewError(http.StatusInternalServerError, message)
}
