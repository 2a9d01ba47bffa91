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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `project_id, name, budget_allocation, start_date, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

func scanProject(row pgx.Row) (domain.Project, error) {
	var p models.Project
	var createdBy, updatedBy sql.NullString
	err := row.Scan(
		&p.ProjectID,
		&p.Name,
		&p.BudgetAllocation,
		&p.StartDate,
		&p.Description,
		&p.IsActive,
		&p.CreatedAt,
		&createdBy,
		&p.LastUpdatedAt,
		&updatedBy,
	)
	if err != nil {
		return domain.Project{}, err
	}
	p.CreatedBy = createdBy.String
	p.LastUpdatedBy = updatedBy.String
	return mapping.ToDomainProject(p), nil
}

// SaveProject inserts a new project.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	p := mapping.ToModelProject(project)
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		p.ProjectID,
		p.Name,
		p.BudgetAllocation,
		p.StartDate,
		p.Description,
		p.IsActive,
		p.CreatedAt,
		nullString(p.CreatedBy),
		p.LastUpdatedAt,
		nullString(p.LastUpdatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to save project %s: %w", p.ProjectID, classifyPgError(err))
	}
	return nil
}

// FindProjectByID retrieves a project by its ID, active or not.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	project, err := scanProject(r.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: project %s", apperrors.ErrNotFound, projectID)
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	return &project, nil
}

// FindProjectByIDForUpdate retrieves a project and locks its row.
// Must be called within a transaction.
func (r *PgxProjectRepository) FindProjectByIDForUpdate(ctx context.Context, tx pgx.Tx, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1 FOR UPDATE;`
	project, err := scanProject(tx.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: project %s", apperrors.ErrNotFound, projectID)
		}
		return nil, fmt.Errorf("failed to lock project %s: %w", projectID, classifyPgError(err))
	}
	return &project, nil
}

// DeactivateProject marks a project as inactive.
func (r *PgxProjectRepository) DeactivateProject(ctx context.Context, projectID string, userID string, now time.Time) error {
	query := `
		UPDATE projects
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE project_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, projectID, now, nullString(userID))
	if err != nil {
		return fmt.Errorf("failed to execute deactivate project %s: %w", projectID, classifyPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindProjectByID(ctx, projectID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: project %s is already inactive", apperrors.ErrValidation, projectID)
	}
	return nil
}
