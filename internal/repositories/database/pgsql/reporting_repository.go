package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reportingRepository struct {
	pool *pgxpool.Pool
}

// newReportingRepository creates a repository for aggregated report queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetMonthlyExpenseTotals aggregates a project's active expenses per calendar month.
func (r *reportingRepository) GetMonthlyExpenseTotals(ctx context.Context, projectID string) ([]domain.MonthlyExpenseTotal, error) {
	query := `
		SELECT date_trunc('month', expense_date)::date AS month, SUM(amount), COUNT(*)
		FROM expenses
		WHERE project_id = $1 AND is_active = TRUE
		GROUP BY month
		ORDER BY month DESC;
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly expense totals for project %s: %w", projectID, err)
	}
	defer rows.Close()

	totals := []domain.MonthlyExpenseTotal{}
	for rows.Next() {
		var row domain.MonthlyExpenseTotal
		if err := rows.Scan(&row.Month, &row.Total, &row.ExpenseCount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly expense total: %w", err)
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly expense totals: %w", err)
	}
	return totals, nil
}

// GetMonthlyMovementTotals aggregates increases and decreases of active materials per calendar month.
// Resets are counted but contribute to neither total.
func (r *reportingRepository) GetMonthlyMovementTotals(ctx context.Context, filter domain.MovementReportFilter) ([]domain.MonthlyMovementTotal, error) {
	query := `
		SELECT date_trunc('month', mm.recorded_at) AS month,
		       COALESCE(SUM(mm.quantity) FILTER (WHERE mm.movement_type = 'INCREASE'), 0),
		       COALESCE(SUM(mm.quantity) FILTER (WHERE mm.movement_type = 'DECREASE'), 0),
		       COUNT(*)
		FROM material_movements mm
		JOIN materials m ON m.material_id = mm.material_id
		WHERE m.is_active = TRUE
		  AND ($1::text = '' OR mm.material_id = $1::text)
		  AND ($2::text = '' OR m.category = $2::text)
		GROUP BY month
		ORDER BY month DESC;
	`
	rows, err := r.pool.Query(ctx, query, filter.MaterialID, string(filter.Category))
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly movement totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.MonthlyMovementTotal{}
	for rows.Next() {
		var row domain.MonthlyMovementTotal
		if err := rows.Scan(&row.Month, &row.Increased, &row.Decreased, &row.MovementCount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly movement total: %w", err)
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly movement totals: %w", err)
	}
	return totals, nil
}
