package accounting

import (
	"fmt"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateSignedQuantity returns the effect of a non-reset movement on a balance.
// Used by both services and repositories so replay and live application agree.
func CalculateSignedQuantity(mv domain.MovementRecord) (decimal.Decimal, error) {
	switch mv.Type {
	case domain.MovementIncrease:
		return mv.Quantity, nil
	case domain.MovementDecrease:
		return mv.Quantity.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("movement type '%s' has no signed quantity (movement %s)", mv.Type, mv.MovementID)
	}
}

// ReplayBalance rebuilds a material balance from its movement log.
// movements must be in the order they were applied. The baseline is the
// quantity of the last RESET, or initial when the log holds no reset.
// It returns the balance and the number of movements that contributed to it.
func ReplayBalance(initial decimal.Decimal, movements []domain.MovementRecord) (decimal.Decimal, int, error) {
	start := 0
	balance := initial
	for i := len(movements) - 1; i >= 0; i-- {
		if movements[i].Type == domain.MovementReset {
			balance = movements[i].Quantity
			start = i + 1
			break
		}
	}

	used := len(movements) - start
	if start > 0 {
		used++ // the reset itself
	}

	for _, mv := range movements[start:] {
		signed, err := CalculateSignedQuantity(mv)
		if err != nil {
			return decimal.Zero, 0, err
		}
		balance = balance.Add(signed)
		if balance.IsNegative() {
			return decimal.Zero, 0, fmt.Errorf("replay drove balance negative at movement %s", mv.MovementID)
		}
	}
	return balance, used, nil
}

// PercentConsumed returns spent as a percentage of allocation rounded to two places.
// A zero allocation yields zero.
func PercentConsumed(spent, allocation decimal.Decimal) decimal.Decimal {
	if allocation.IsZero() {
		return decimal.Zero
	}
	return spent.Div(allocation).Mul(hundred).Round(2)
}

// BuildBudgetSummary derives the consumption figures of a project.
func BuildBudgetSummary(project domain.Project, spent decimal.Decimal, expenseCount int) domain.BudgetSummary {
	pct := PercentConsumed(spent, project.BudgetAllocation)
	return domain.BudgetSummary{
		ProjectID:       project.ProjectID,
		ProjectName:     project.Name,
		Allocation:      project.BudgetAllocation,
		Spent:           spent,
		Remaining:       project.BudgetAllocation.Sub(spent),
		PercentConsumed: pct,
		ExpenseCount:    expenseCount,
		NearLimit:       pct.GreaterThanOrEqual(domain.NearLimitPercent),
	}
}
