package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the structured error surface of the orchestration layer. Every
// failure reported to callers carries a status code and a message.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a new Error with the given status and message.
func New(status int, format string, args ...any) *Error {
	return &Error{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
}

// ProductsNotFound reports catalog products missing from a validate response.
func ProductsNotFound(missing []int64) *Error {
	return New(http.StatusBadRequest, "products not found in catalog: %v", missing)
}

// OrderNotFound reports a lookup on an unknown order identifier.
func OrderNotFound(id string) *Error {
	return New(http.StatusNotFound, "order with id %s not found", id)
}

// From converts any error to an Error. Errors without an explicit status
// default to status 400 with the raw error text as message.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return New(http.StatusBadRequest, "%s", err.Error())
}
