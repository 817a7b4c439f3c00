package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidAmount indicates a non-positive monetary amount. It is a validation error.
var ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrDuplicateInvoiceNumber indicates that an allocated invoice number collided with an existing one
// and the allocator ran out of retries.
var ErrDuplicateInvoiceNumber = errors.New("duplicate invoice number")

// ErrReferentialConflict indicates a delete that would orphan dependent records.
var ErrReferentialConflict = errors.New("referential conflict")

// ErrCancelled indicates that a batch operation was aborted by its caller's deadline or cancellation.
var ErrCancelled = errors.New("operation cancelled")

// ErrAllocatorUnavailable indicates that the invoice sequence could not be advanced atomically.
var ErrAllocatorUnavailable = errors.New("invoice number allocator unavailable")

// ErrForbidden indicates that the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when the failure is not attributable to the caller.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and a message alongside the underlying cause.
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

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// IsRetryable reports whether err is a contention error that a caller may retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrDuplicateInvoiceNumber)
}
