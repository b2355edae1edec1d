package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error the API can show to a donor. Code is the HTTP status,
// Message is safe to display, and Err keeps the cause for the logs.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(code int, msg string, err error) *AppError {
	return &AppError{Code: code, Message: msg, Err: err}
}

// Request problems.

func ErrBadRequest(msg string) *AppError { return newAppError(http.StatusBadRequest, msg, nil) }

// ErrValidation reports a well-formed request the donation catalog or the
// request rules reject, e.g. an amount that is not offered.
func ErrValidation(msg string) *AppError {
	return newAppError(http.StatusUnprocessableEntity, msg, nil)
}

func ErrUnauthorized(msg string) *AppError { return newAppError(http.StatusUnauthorized, msg, nil) }

// ErrTooManyRequests is returned by the per-IP limiters.
func ErrTooManyRequests(msg string) *AppError {
	return newAppError(http.StatusTooManyRequests, msg, nil)
}

// Resource state.

// ErrNotFound covers unknown, closed and expired donation forms.
func ErrNotFound(msg string) *AppError { return newAppError(http.StatusNotFound, msg, nil) }

// ErrConflict reports a request that does not fit the form's current state,
// e.g. changing the amount while a payment is in flight.
func ErrConflict(msg string, err error) *AppError {
	return newAppError(http.StatusConflict, msg, err)
}

// ErrInternal hides err from the donor behind msg.
func ErrInternal(msg string, err error) *AppError {
	return newAppError(http.StatusInternalServerError, msg, err)
}

// AsAppError attempts to extract an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus returns the status code for err. Errors that are not AppErrors
// are internal.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
