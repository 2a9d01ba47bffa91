package services

import (
	"context"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/SscSPs/farm_ledger/internal/dto"
)

// ProjectSvc defines administrative operations on projects
type ProjectSvc interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, actorID string) (*domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	DeactivateProject(ctx context.Context, projectID string, actorID string) error
}

// BudgetGuardSvc admits expenses against project budgets.
// The spent total is read and the expense inserted under the same project row lock.
type BudgetGuardSvc interface {
	// RegisterExpense fails with *apperrors.BudgetExceededError when the expense would push
	// spending over the allocation.
	RegisterExpense(ctx context.Context, projectID string, req dto.RegisterExpenseRequest, actorID string) (*domain.Expense, error)

	// GetBudgetSummary reports allocation, spending and consumption of a project.
	GetBudgetSummary(ctx context.Context, projectID string) (*domain.BudgetSummary, error)

	// ListExpenses lists a project's active expenses, newest first.
	ListExpenses(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// DeactivateExpense flags an expense inactive, releasing its amount back to the budget.
	DeactivateExpense(ctx context.Context, expenseID string, actorID string) error
}

// BudgetSvcFacade combines all project and budget service interfaces
type BudgetSvcFacade interface {
	ProjectSvc
	BudgetGuardSvc
}
