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

// ErrInsufficientStock indicates a decrease that would drive a material balance below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrBudgetExceeded indicates an expense that would push project spending over its allocation.
var ErrBudgetExceeded = errors.New("budget exceeded")

// ErrLinkage indicates a movement that references an expense it is not allowed to reference.
var ErrLinkage = errors.New("invalid expense linkage")

// ErrConcurrencyTimeout indicates the exclusive hold on a balance could not be acquired in time.
var ErrConcurrencyTimeout = errors.New("could not acquire balance lock")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// InsufficientStockError carries the numeric context of a rejected decrease.
type InsufficientStockError struct {
	MaterialID   string
	MaterialName string
	Unit         string
	Requested    decimal.Decimal
	Available    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for material %s (%s): requested %s %s, available %s %s",
		e.MaterialName, e.MaterialID, e.Requested.String(), e.Unit, e.Available.String(), e.Unit)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// BudgetExceededError carries the numeric context of a rejected expense.
type BudgetExceededError struct {
	ProjectID   string
	ProjectName string
	Amount      decimal.Decimal
	Remaining   decimal.Decimal
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("expense of %s exceeds the remaining budget of project %s (%s): remaining %s",
		e.Amount.StringFixed(2), e.ProjectName, e.ProjectID, e.Remaining.StringFixed(2))
}

func (e *BudgetExceededError) Unwrap() error { return ErrBudgetExceeded }

// AppError wraps an infrastructure error with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Kind returns a stable, machine readable name for the category of err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrBudgetExceeded):
		return "budget_exceeded"
	case errors.Is(err, ErrLinkage):
		return "linkage_error"
	case errors.Is(err, ErrConcurrencyTimeout):
		return "concurrency_timeout"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "internal_error"
	}
}

// IsRetryable reports whether the caller may resubmit the same request unchanged.
// Only lock acquisition failures qualify; every other rejection is deterministic.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyTimeout)
}
