package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the kind of change a movement applies to a material balance.
type MovementType string

const (
	MovementIncrease MovementType = "INCREASE"
	MovementDecrease MovementType = "DECREASE"
	MovementReset    MovementType = "RESET"
)

// IsValid reports whether t is a known movement type.
func (t MovementType) IsValid() bool {
	return t == MovementIncrease || t == MovementDecrease || t == MovementReset
}

// MovementRecord is an immutable entry in a material's movement log.
type MovementRecord struct {
	MovementID      string          `json:"movementID"`
	MaterialID      string          `json:"materialID"`
	Type            MovementType    `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	LinkedExpenseID string          `json:"linkedExpenseID,omitempty"`
	Note            string          `json:"note,omitempty"`
	RecordedAt      time.Time       `json:"recordedAt"`
	RecordedBy      string          `json:"recordedBy,omitempty"`
}

// IsLinked reports whether the movement references an expense.
func (m MovementRecord) IsLinked() bool {
	return m.LinkedExpenseID != ""
}

// NextBalance computes the balance that results from applying a movement of
// type t and quantity q to current. ok is false when a decrease would leave the
// balance negative; the returned balance is then meaningless.
func NextBalance(current decimal.Decimal, t MovementType, q decimal.Decimal) (next decimal.Decimal, ok bool) {
	switch t {
	case MovementIncrease:
		return current.Add(q), true
	case MovementDecrease:
		next = current.Sub(q)
		if next.IsNegative() {
			return current, false
		}
		return next, true
	case MovementReset:
		return q, true
	}
	return current, false
}
