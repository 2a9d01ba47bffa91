package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is the row shape of the projects table.
type Project struct {
	ProjectID        string          `db:"project_id"`
	Name             string          `db:"name"`
	BudgetAllocation decimal.Decimal `db:"budget_allocation"`
	StartDate        time.Time       `db:"start_date"`
	Description      string          `db:"description"`
	IsActive         bool            `db:"is_active"`
	AuditFields
}
