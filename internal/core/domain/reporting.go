package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyExpenseTotal aggregates the active expenses of one project for one month.
type MonthlyExpenseTotal struct {
	Month        time.Time       `json:"month"`
	Total        decimal.Decimal `json:"total"`
	ExpenseCount int             `json:"expenseCount"`
}

// MonthlyMovementTotal aggregates movements for one month.
type MonthlyMovementTotal struct {
	Month         time.Time       `json:"month"`
	Increased     decimal.Decimal `json:"increased"`
	Decreased     decimal.Decimal `json:"decreased"`
	MovementCount int             `json:"movementCount"`
}

// MovementReportFilter narrows the monthly movement report.
type MovementReportFilter struct {
	MaterialID string
	Category   MaterialCategory
}
