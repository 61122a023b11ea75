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

// ErrActivePeriodExists indicates that an account already has an active reporting period.
var ErrActivePeriodExists = errors.New("an active period already exists for this account")

// AppError wraps an underlying error with an HTTP-ish status code and a message
// that is safe to surface to callers.
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

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound so callers
// can keep using errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// UnreconciledTransactionsError is returned when a period close is blocked by the
// reconciliation gate. Count carries the number of blocking transactions.
type UnreconciledTransactionsError struct {
	PeriodID string
	Count    int
}

func (e *UnreconciledTransactionsError) Error() string {
	return fmt.Sprintf("period %s cannot be closed: %d unreconciled transaction(s) in its window", e.PeriodID, e.Count)
}
