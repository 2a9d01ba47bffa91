package repositories

import (
	"context"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
)

// ReportingRepository defines operations for retrieving aggregated report data
type ReportingRepository interface {
	// GetMonthlyExpenseTotals aggregates a project's active expenses per month, newest first.
	GetMonthlyExpenseTotals(ctx context.Context, projectID string) ([]domain.MonthlyExpenseTotal, error)

	// GetMonthlyMovementTotals aggregates movements of active materials per month, newest first.
	GetMonthlyMovementTotals(ctx context.Context, filter domain.MovementReportFilter) ([]domain.MonthlyMovementTotal, error)
}
