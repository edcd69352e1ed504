package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/fxdesk/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestNewNotFoundError(t *testing.T) {
	err := apperrors.NewNotFoundError("cash asset a-1 not found")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Contains(t, err.Error(), "cash asset a-1 not found")
}

func TestNewValidationError(t *testing.T) {
	err := apperrors.NewValidationError("from and to currencies cannot be the same")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestAppError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("loading rates: %w", apperrors.NewAppError(500, "failed to list exchange rates", cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "loading rates: failed to list exchange rates: connection reset", err.Error())

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.Code)
}

func TestAppError_WithoutCause(t *testing.T) {
	err := &apperrors.AppError{Code: 400, Message: "bad input"}
	assert.Equal(t, "bad input", err.Error())
	assert.Nil(t, err.Unwrap())
}
