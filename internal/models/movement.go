package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRecord is the row shape of the material_movements table.
// Seq is assigned by the database and orders the log.
type MovementRecord struct {
	Seq             int64           `db:"seq"`
	MovementID      string          `db:"movement_id"`
	MaterialID      string          `db:"material_id"`
	MovementType    string          `db:"movement_type"`
	Quantity        decimal.Decimal `db:"quantity"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	LinkedExpenseID string          `db:"linked_expense_id"` // Nullable FK -> expenses
	Note            string          `db:"note"`
	RecordedAt      time.Time       `db:"recorded_at"`
	RecordedBy      string          `db:"recorded_by"` // Nullable FK -> users
}
