package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the row shape of the expenses table.
type Expense struct {
	ExpenseID       string          `db:"expense_id"`
	ProjectID       string          `db:"project_id"`
	Category        string          `db:"category"`
	SupplierID      string          `db:"supplier_id"` // Nullable
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	ExpenseDate     time.Time       `db:"expense_date"`
	PaymentMethod   string          `db:"payment_method"`
	ReferenceNumber string          `db:"reference_number"`
	IsRetroactive   bool            `db:"is_retroactive"`
	Notes           string          `db:"notes"`
	RemainingAfter  decimal.Decimal `db:"remaining_after"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
