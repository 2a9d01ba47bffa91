package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project owns a budget allocation consumed by its expenses.
type Project struct {
	ProjectID        string          `json:"projectID"`
	Name             string          `json:"name"`
	BudgetAllocation decimal.Decimal `json:"budgetAllocation"`
	StartDate        time.Time       `json:"startDate"`
	Description      string          `json:"description,omitempty"`
	IsActive         bool            `json:"isActive"`
	AuditFields
}

// BudgetSummary is a point-in-time view of a project's budget consumption.
type BudgetSummary struct {
	ProjectID       string          `json:"projectID"`
	ProjectName     string          `json:"projectName"`
	Allocation      decimal.Decimal `json:"allocation"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	PercentConsumed decimal.Decimal `json:"percentConsumed"`
	ExpenseCount    int             `json:"expenseCount"`
	NearLimit       bool            `json:"nearLimit"`
}
