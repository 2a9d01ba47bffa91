package dto

import (
	"time"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyExpenseReportParams defines query parameters for the monthly expense report.
type MonthlyExpenseReportParams struct {
	ProjectID string `form:"project" binding:"required"`
}

// MonthlyMovementReportParams defines query parameters for the monthly movement report.
type MonthlyMovementReportParams struct {
	MaterialID string `form:"material"`
	Category   string `form:"category" binding:"omitempty,oneof=CONSTRUCTION FARM"`
}

// MonthlyExpenseRow is one month of a project's spending.
type MonthlyExpenseRow struct {
	Month        string          `json:"month"` // YYYY-MM
	Total        decimal.Decimal `json:"total"`
	ExpenseCount int             `json:"expenseCount"`
}

// MonthlyMovementRow is one month of stock movements.
type MonthlyMovementRow struct {
	Month         string          `json:"month"` // YYYY-MM
	Increased     decimal.Decimal `json:"increased"`
	Decreased     decimal.Decimal `json:"decreased"`
	Net           decimal.Decimal `json:"net"`
	MovementCount int             `json:"movementCount"`
}

const monthLayout = "2006-01"

func formatMonth(t time.Time) string {
	return t.UTC().Format(monthLayout)
}

// ToMonthlyExpenseRows converts aggregated expense totals.
func ToMonthlyExpenseRows(rows []domain.MonthlyExpenseTotal) []MonthlyExpenseRow {
	res := make([]MonthlyExpenseRow, len(rows))
	for i, r := range rows {
		res[i] = MonthlyExpenseRow{Month: formatMonth(r.Month), Total: r.Total, ExpenseCount: r.ExpenseCount}
	}
	return res
}

// ToMonthlyMovementRows converts aggregated movement totals.
func ToMonthlyMovementRows(rows []domain.MonthlyMovementTotal) []MonthlyMovementRow {
	res := make([]MonthlyMovementRow, len(rows))
	for i, r := range rows {
		res[i] = MonthlyMovementRow{
			Month:         formatMonth(r.Month),
			Increased:     r.Increased,
			Decreased:     r.Decreased,
			Net:           r.Increased.Sub(r.Decreased),
			MovementCount: r.MovementCount,
		}
	}
	return res
}
