package dto

import (
	"time"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterExpenseRequest defines the data needed to charge an expense to a project.
type RegisterExpenseRequest struct {
	Category        string               `json:"category" binding:"required,max=100"`
	Amount          decimal.Decimal      `json:"amount" binding:"dpos"`
	ExpenseDate     time.Time            `json:"expenseDate" binding:"required"`
	Description     string               `json:"description" binding:"required,max=500"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=CASH TRANSFER QR"` // Defaults to TRANSFER
	ReferenceNumber string               `json:"referenceNumber" binding:"max=100"`
	SupplierID      string               `json:"supplierID"`
	Notes           string               `json:"notes"`
}

// ToExpenseDraft converts the request into the fields the budget guard registers.
func (r RegisterExpenseRequest) ToExpenseDraft() domain.ExpenseDraft {
	method := r.PaymentMethod
	if method == "" {
		method = domain.PaymentTransfer
	}
	return domain.ExpenseDraft{
		Category:        r.Category,
		SupplierID:      r.SupplierID,
		Amount:          r.Amount,
		Description:     r.Description,
		ExpenseDate:     r.ExpenseDate,
		PaymentMethod:   method,
		ReferenceNumber: r.ReferenceNumber,
		Notes:           r.Notes,
	}
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID       string               `json:"expenseID"`
	ProjectID       string               `json:"projectID"`
	Category        string               `json:"category"`
	SupplierID      string               `json:"supplierID,omitempty"`
	Amount          decimal.Decimal      `json:"amount"`
	Description     string               `json:"description"`
	ExpenseDate     time.Time            `json:"expenseDate"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	ReferenceNumber string               `json:"referenceNumber,omitempty"`
	IsRetroactive   bool                 `json:"isRetroactive"`
	Notes           string               `json:"notes,omitempty"`
	RemainingAfter  decimal.Decimal      `json:"remainingAfter"`
	IsActive        bool                 `json:"isActive"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy,omitempty"`
}

// ListExpensesParams defines query parameters for listing a project's expenses.
type ListExpensesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		ProjectID:       e.ProjectID,
		Category:        e.Category,
		SupplierID:      e.SupplierID,
		Amount:          e.Amount,
		Description:     e.Description,
		ExpenseDate:     e.ExpenseDate,
		PaymentMethod:   e.PaymentMethod,
		ReferenceNumber: e.ReferenceNumber,
		IsRetroactive:   e.IsRetroactive,
		Notes:           e.Notes,
		RemainingAfter:  e.RemainingAfter,
		IsActive:        e.IsActive,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToListExpensesResponse converts a page of expenses.
func ToListExpensesResponse(expenses []domain.Expense, nextToken *string) ListExpensesResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: res, NextToken: nextToken}
}
