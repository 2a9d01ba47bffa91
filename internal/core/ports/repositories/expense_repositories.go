package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByProject retrieves a page of a project's active expenses, newest first.
	ListExpensesByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// SumActiveExpenses returns the total and count of a project's active expenses.
	SumActiveExpenses(ctx context.Context, projectID string) (decimal.Decimal, int, error)
}

// ExpenseTransactionSupport defines operations used inside a budget transaction
type ExpenseTransactionSupport interface {
	// SumActiveExpensesInTx returns the total and count of a project's active expenses
	// as seen by tx. Callers hold the project lock.
	SumActiveExpensesInTx(ctx context.Context, tx pgx.Tx, projectID string) (decimal.Decimal, int, error)

	// SaveExpenseInTx persists a new expense.
	SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error

	// DeactivateExpenseInTx marks an active expense as inactive.
	DeactivateExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string, userID string, now time.Time) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseTransactionSupport
}
