package mapping

import (
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/SscSPs/farm_ledger/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:       d.ExpenseID,
		ProjectID:       d.ProjectID,
		Category:        d.Category,
		SupplierID:      d.SupplierID,
		Amount:          d.Amount,
		Description:     d.Description,
		ExpenseDate:     d.ExpenseDate,
		PaymentMethod:   string(d.PaymentMethod),
		ReferenceNumber: d.ReferenceNumber,
		IsRetroactive:   d.IsRetroactive,
		Notes:           d.Notes,
		RemainingAfter:  d.RemainingAfter,
		IsActive:        d.IsActive,
		AuditFields:     models.AuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:       m.ExpenseID,
		ProjectID:       m.ProjectID,
		Category:        m.Category,
		SupplierID:      m.SupplierID,
		Amount:          m.Amount,
		Description:     m.Description,
		ExpenseDate:     m.ExpenseDate,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		ReferenceNumber: m.ReferenceNumber,
		IsRetroactive:   m.IsRetroactive,
		Notes:           m.Notes,
		RemainingAfter:  m.RemainingAfter,
		IsActive:        m.IsActive,
		AuditFields:     domain.AuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
