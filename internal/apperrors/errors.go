package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrNoRateAvailable indicates that no active rate record matches a currency pair under any fallback.
// It must block the enclosing transaction; callers never substitute a zero rate.
var ErrNoRateAvailable = errors.New("no rate available")

// ErrInvalidAmount indicates a non-positive or otherwise unusable amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidEffectiveRate indicates a zero effective rate passed to profit computation.
var ErrInvalidEffectiveRate = errors.New("invalid effective rate")

// AppError carries a status-like code and a message alongside the wrapped cause.
// Used by adapters to report infrastructure failures without losing the original error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound with errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError that matches ErrValidation with errors.Is.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}
