package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// AppError wraps an underlying error with an application status code and message.
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

// NewAppError creates a new AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// UnbalancedEntryError is returned when a transaction's debit and credit sums
// disagree. Diff is debits minus credits for the offending currency, so the
// caller sees the exact residual.
type UnbalancedEntryError struct {
	CurrencyCode string
	Diff         decimal.Decimal
	// InCurrency distinguishes the per-currency group check performed while
	// posting from the whole-transaction check performed while syncing.
	InCurrency bool
}

func (e *UnbalancedEntryError) Error() string {
	if e.InCurrency {
		return fmt.Sprintf("Unbalanced journal entry in transaction currency: %s", e.Diff)
	}
	return fmt.Sprintf("Unbalanced journal entry: %s", e.Diff)
}

// IsUnbalanced reports whether err is (or wraps) an UnbalancedEntryError.
func IsUnbalanced(err error) bool {
	var target *UnbalancedEntryError
	return errors.As(err, &target)
}
