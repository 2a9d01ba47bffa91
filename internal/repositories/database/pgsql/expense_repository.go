package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger/internal/models"
	"github.com/SscSPs/farm_ledger/internal/utils/mapping"
	"github.com/SscSPs/farm_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const expenseColumns = `expense_id, project_id, category, supplier_id, amount, description, expense_date, payment_method, reference_number, is_retroactive, notes, remaining_after, is_active, created_at, created_by, last_updated_at, last_updated_by`

const sumActiveExpensesQuery = `
	SELECT COALESCE(SUM(amount), 0), COUNT(*)
	FROM expenses
	WHERE project_id = $1 AND is_active = TRUE;
`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var e models.Expense
	var supplierID, createdBy, updatedBy sql.NullString
	err := row.Scan(
		&e.ExpenseID,
		&e.ProjectID,
		&e.Category,
		&supplierID,
		&e.Amount,
		&e.Description,
		&e.ExpenseDate,
		&e.PaymentMethod,
		&e.ReferenceNumber,
		&e.IsRetroactive,
		&e.Notes,
		&e.RemainingAfter,
		&e.IsActive,
		&e.CreatedAt,
		&createdBy,
		&e.LastUpdatedAt,
		&updatedBy,
	)
	if err != nil {
		return domain.Expense{}, err
	}
	e.SupplierID = supplierID.String
	e.CreatedBy = createdBy.String
	e.LastUpdatedBy = updatedBy.String
	return mapping.ToDomainExpense(e), nil
}

// SaveExpenseInTx inserts a new expense within the caller's transaction.
func (r *PgxExpenseRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	e := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		e.ExpenseID,
		e.ProjectID,
		e.Category,
		nullString(e.SupplierID),
		e.Amount,
		e.Description,
		e.ExpenseDate,
		e.PaymentMethod,
		e.ReferenceNumber,
		e.IsRetroactive,
		e.Notes,
		e.RemainingAfter,
		e.IsActive,
		e.CreatedAt,
		nullString(e.CreatedBy),
		e.LastUpdatedAt,
		nullString(e.LastUpdatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", e.ExpenseID, classifyPgError(err))
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID, active or not.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	return &expense, nil
}

// SumActiveExpenses returns the committed total and count of a project's active expenses.
func (r *PgxExpenseRepository) SumActiveExpenses(ctx context.Context, projectID string) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int
	if err := r.Pool.QueryRow(ctx, sumActiveExpensesQuery, projectID).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum expenses of project %s: %w", projectID, err)
	}
	return total, count, nil
}

// SumActiveExpensesInTx returns the total and count of a project's active expenses inside tx.
func (r *PgxExpenseRepository) SumActiveExpensesInTx(ctx context.Context, tx pgx.Tx, projectID string) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int
	if err := tx.QueryRow(ctx, sumActiveExpensesQuery, projectID).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum expenses of project %s: %w", projectID, classifyPgError(err))
	}
	return total, count, nil
}

// ListExpensesByProject retrieves a page of a project's active expenses, newest first.
func (r *PgxExpenseRepository) ListExpensesByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query := `
			SELECT ` + expenseColumns + `
			FROM expenses
			WHERE project_id = $1 AND is_active = TRUE AND (expense_date, created_at) < ($2, $3)
			ORDER BY expense_date DESC, created_at DESC
			LIMIT $4;
		`
		rows, err = r.Pool.Query(ctx, query, projectID, lastDate, lastCreatedAt, fetchLimit)
	} else {
		query := `
			SELECT ` + expenseColumns + `
			FROM expenses
			WHERE project_id = $1 AND is_active = TRUE
			ORDER BY expense_date DESC, created_at DESC
			LIMIT $2;
		`
		rows, err = r.Pool.Query(ctx, query, projectID, fetchLimit)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses for project %s: %w", projectID, err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0, fetchLimit)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row for project %s: %w", projectID, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating expense rows for project %s: %w", projectID, err)
	}

	var next *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		token := pagination.EncodeToken(last.ExpenseDate, last.CreatedAt)
		next = &token
	}
	return expenses, next, nil
}

// DeactivateExpenseInTx marks an active expense as inactive.
func (r *PgxExpenseRepository) DeactivateExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string, userID string, now time.Time) error {
	query := `
		UPDATE expenses
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE expense_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := tx.Exec(ctx, query, expenseID, now, nullString(userID))
	if err != nil {
		return fmt.Errorf("failed to deactivate expense %s: %w", expenseID, classifyPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s is not active", apperrors.ErrValidation, expenseID)
	}
	return nil
}
