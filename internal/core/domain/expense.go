package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod records how an expense was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentQR       PaymentMethod = "QR"
)

// IsValid reports whether p is a known payment method.
func (p PaymentMethod) IsValid() bool {
	return p == PaymentCash || p == PaymentTransfer || p == PaymentQR
}

// Expense is a charge against a project's budget. Only IsActive may change after it is persisted.
type Expense struct {
	ExpenseID       string          `json:"expenseID"`
	ProjectID       string          `json:"projectID"`
	Category        string          `json:"category"`
	SupplierID      string          `json:"supplierID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ExpenseDate     time.Time       `json:"expenseDate"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	IsRetroactive   bool            `json:"isRetroactive"`
	Notes           string          `json:"notes,omitempty"`
	RemainingAfter  decimal.Decimal `json:"remainingAfter"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// ExpenseDraft carries the caller supplied fields of an expense before it is registered.
type ExpenseDraft struct {
	Category        string
	SupplierID      string
	Amount          decimal.Decimal
	Description     string
	ExpenseDate     time.Time
	PaymentMethod   PaymentMethod
	ReferenceNumber string
	Notes           string
}
