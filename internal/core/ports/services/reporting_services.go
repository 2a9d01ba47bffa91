package services

import (
	"context"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
)

// ReportingService defines operations for generating ledger reports
type ReportingService interface {
	// MonthlyExpenseSummary totals a project's active expenses per month, newest first.
	MonthlyExpenseSummary(ctx context.Context, projectID string) ([]domain.MonthlyExpenseTotal, error)

	// MonthlyMovementSummary totals increases and decreases per month, newest first.
	MonthlyMovementSummary(ctx context.Context, filter domain.MovementReportFilter) ([]domain.MonthlyMovementTotal, error)
}
