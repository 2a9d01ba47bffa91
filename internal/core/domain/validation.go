package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces is the precision persisted for quantities and money.
const MaxDecimalPlaces = 2

var (
	// MaxExpenseAmount caps a single expense.
	MaxExpenseAmount = decimal.NewFromInt(1_000_000)
	// MaxBudgetAllocation caps a project's budget.
	MaxBudgetAllocation = decimal.NewFromInt(10_000_000)
	// MaxStock is the largest quantity or balance a material can hold.
	MaxStock = decimal.RequireFromString("9999999999.99")
	// NearLimitPercent is the consumption at which a budget is reported as near its limit.
	NearLimitPercent = decimal.NewFromInt(90)
)

func checkPrecision(field string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(MaxDecimalPlaces)) {
		return fmt.Errorf("%w: %s supports at most %d decimal places", apperrors.ErrValidation, field, MaxDecimalPlaces)
	}
	return nil
}

// ValidateQuantity checks that a movement quantity is strictly positive and storable.
func ValidateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return fmt.Errorf("%w: quantity must be greater than zero, got %s", apperrors.ErrValidation, q.String())
	}
	if q.GreaterThan(MaxStock) {
		return fmt.Errorf("%w: quantity %s exceeds the maximum of %s", apperrors.ErrValidation, q.String(), MaxStock.String())
	}
	return checkPrecision("quantity", q)
}

// ValidateStockLevel checks that a resulting balance fits in the store.
func ValidateStockLevel(balance decimal.Decimal) error {
	if balance.GreaterThan(MaxStock) {
		return fmt.Errorf("%w: resulting stock %s exceeds the maximum of %s", apperrors.ErrValidation, balance.String(), MaxStock.String())
	}
	return nil
}

// ValidateMovementType checks that t is one of the known movement types.
func ValidateMovementType(t MovementType) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: unknown movement type %q", apperrors.ErrValidation, t)
	}
	return nil
}

// ValidateMovementLinkage checks that an expense link is only attached to a
// non-reset movement of a construction material.
func ValidateMovementLinkage(category MaterialCategory, t MovementType, linked bool) error {
	if !linked {
		return nil
	}
	if category != CategoryConstruction {
		return fmt.Errorf("%w: only %s materials can be linked to an expense, material is %s",
			apperrors.ErrLinkage, CategoryConstruction, category)
	}
	if t == MovementReset {
		return fmt.Errorf("%w: a %s movement cannot be linked to an expense", apperrors.ErrLinkage, MovementReset)
	}
	return nil
}

// ValidateExpenseAmount checks that an expense amount is positive and within the per-expense cap.
func ValidateExpenseAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: expense amount must be greater than zero, got %s", apperrors.ErrValidation, amount.String())
	}
	if amount.GreaterThan(MaxExpenseAmount) {
		return fmt.Errorf("%w: expense amount %s exceeds the maximum of %s", apperrors.ErrValidation, amount.String(), MaxExpenseAmount.String())
	}
	return checkPrecision("amount", amount)
}

// ValidateExpenseDate rejects dates after the current day.
// Days are compared in now's time zone.
func ValidateExpenseDate(date, now time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: expense date is required", apperrors.ErrValidation)
	}
	if truncateDay(date.In(now.Location())).After(truncateDay(now)) {
		return fmt.Errorf("%w: expense date %s is in the future", apperrors.ErrValidation, date.Format(time.DateOnly))
	}
	return nil
}

// IsRetroactive reports whether date falls on a day before now.
func IsRetroactive(date, now time.Time) bool {
	return truncateDay(date.In(now.Location())).Before(truncateDay(now))
}

// ValidateBudgetAllocation checks a project allocation.
func ValidateBudgetAllocation(allocation decimal.Decimal) error {
	if !allocation.IsPositive() {
		return fmt.Errorf("%w: budget allocation must be greater than zero", apperrors.ErrValidation)
	}
	if allocation.GreaterThan(MaxBudgetAllocation) {
		return fmt.Errorf("%w: budget allocation %s exceeds the maximum of %s", apperrors.ErrValidation, allocation.String(), MaxBudgetAllocation.String())
	}
	return checkPrecision("budget allocation", allocation)
}

// ValidateMaterial checks the administrative fields of a new material.
func ValidateMaterial(m Material) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: material name is required", apperrors.ErrValidation)
	}
	if !m.Unit.IsValid() {
		return fmt.Errorf("%w: unknown unit of measure %q", apperrors.ErrValidation, m.Unit)
	}
	if !m.Category.IsValid() {
		return fmt.Errorf("%w: unknown material category %q", apperrors.ErrValidation, m.Category)
	}
	if m.InitialStock.IsNegative() {
		return fmt.Errorf("%w: initial stock cannot be negative", apperrors.ErrValidation)
	}
	if m.MinimumAlert.IsNegative() {
		return fmt.Errorf("%w: minimum alert threshold cannot be negative", apperrors.ErrValidation)
	}
	if m.InitialStock.GreaterThan(MaxStock) || m.MinimumAlert.GreaterThan(MaxStock) {
		return fmt.Errorf("%w: stock values cannot exceed %s", apperrors.ErrValidation, MaxStock.String())
	}
	if err := checkPrecision("initial stock", m.InitialStock); err != nil {
		return err
	}
	return checkPrecision("minimum alert threshold", m.MinimumAlert)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
