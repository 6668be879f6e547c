package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the acting user is not permitted to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInvalidTransition indicates a state-machine guard rejected the requested
// transition for the aggregate's current status.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrQuantityInvariant indicates a quantity delta would break the ordering
// invariant 0 <= issued <= approved <= requested / 0 <= received <= issued.
var ErrQuantityInvariant = errors.New("quantity invariant violation")

// ErrNoApplicableRate indicates no active exchange rate exists for the
// currency pair on or before the reference date.
var ErrNoApplicableRate = errors.New("no applicable exchange rate")

// ErrConcurrentModification indicates an optimistic version check failed;
// the caller should re-read and retry.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
// Repositories use it to classify infrastructure failures.
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

// NewAppError wraps an infrastructure failure with a status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds an AppError that matches ErrNotFound under errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError builds an AppError that matches ErrValidation under errors.Is.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
