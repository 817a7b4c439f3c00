package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidAmountIsValidation(t *testing.T) {
	assert.True(t, errors.Is(ErrInvalidAmount, ErrValidation))
	wrapped := fmt.Errorf("apply payment: %w", ErrInvalidAmount)
	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.True(t, errors.Is(wrapped, ErrInvalidAmount))
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewNotFoundError("invoice abc not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 404, err.Code)
	assert.Contains(t, err.Error(), "invoice abc not found")

	cause := errors.New("boom")
	appErr := NewAppError(500, "failed to insert", cause)
	assert.True(t, errors.Is(appErr, cause))
	assert.Equal(t, "failed to insert: boom", appErr.Error())

	assert.Equal(t, "plain", NewAppError(500, "plain", nil).Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("insert: %w", ErrDuplicateInvoiceNumber)))
	assert.False(t, IsRetryable(ErrReferentialConflict))
	assert.False(t, IsRetryable(nil))
}
