package apperrors

import (
	"fmt"
	"net/http"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeLocked     = "LOCK_VIOLATION"
	CodeIncomplete = "INCOMPLETE"
	CodeInternal   = "INTERNAL_ERROR"
)

// AppError is the error shape every service operation returns for expected
// business failures. Handlers map it straight onto the wire; nothing in the
// core retries any of these.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// Validation covers malformed or out-of-range input: missing fields,
// non-numeric strokes, strokes outside bounds, hole outside the event range.
func Validation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(message string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// Locked is an expected, frequent outcome during live play (team submitted,
// event completed, event not yet live) and carries the specific reason.
func Locked(message string) *AppError {
	return &AppError{
		Code:       CodeLocked,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// Incomplete rejects a final submission before every hole has a score.
func Incomplete(message string) *AppError {
	return &AppError{
		Code:       CodeIncomplete,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
