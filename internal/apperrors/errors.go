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

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInvalidArgument indicates a caller-supplied argument is out of range or malformed.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrCurrencyMismatch indicates an operation mixed amounts of different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrUnsupportedInterestMethod indicates a loan references an interest method
// the amortization calculator does not know.
var ErrUnsupportedInterestMethod = errors.New("unsupported interest method")

// ErrInsufficientFunds indicates an account's available balance cannot cover a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrBelowMinimumBalance indicates a debit would take an account below its
// configured minimum balance.
var ErrBelowMinimumBalance = errors.New("balance would fall below account minimum")

// ErrNoPendingEntry indicates a loan has no pending schedule entry to apply a payment to.
var ErrNoPendingEntry = errors.New("no pending schedule entry")

// ErrScheduleMismatch indicates the targeted schedule entry does not belong to the loan.
var ErrScheduleMismatch = errors.New("schedule entry does not belong to loan")

// ErrAlreadyPaid indicates the targeted schedule entry is no longer pending.
var ErrAlreadyPaid = errors.New("schedule entry already paid")

// ErrScheduleExhausted indicates the explicit schedule has no pending entries
// left while a principal balance remains; only a full payoff is accepted.
var ErrScheduleExhausted = errors.New("schedule exhausted with balance remaining")

// ErrTransactionTimeout indicates a balance-sensitive transaction exceeded its
// bounded duration and was aborted with no partial state.
var ErrTransactionTimeout = errors.New("transaction timed out")

// AppError wraps an underlying error with an HTTP-ish status code and message.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
