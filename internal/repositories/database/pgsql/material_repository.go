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
	"github.com/shopspring/decimal"
)

const materialColumns = `material_id, name, code, unit, category, initial_stock, current_stock, minimum_alert, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxMaterialRepository struct {
	BaseRepository
}

// newPgxMaterialRepository creates a new repository for material data.
func newPgxMaterialRepository(pool *pgxpool.Pool) portsrepo.MaterialRepositoryFacade {
	return &PgxMaterialRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMaterialRepository implements portsrepo.MaterialRepositoryFacade
var _ portsrepo.MaterialRepositoryFacade = (*PgxMaterialRepository)(nil)

func scanMaterial(row pgx.Row) (domain.Material, error) {
	var m models.Material
	var code, createdBy, updatedBy sql.NullString
	err := row.Scan(
		&m.MaterialID,
		&m.Name,
		&code,
		&m.Unit,
		&m.Category,
		&m.InitialStock,
		&m.CurrentStock,
		&m.MinimumAlert,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&createdBy,
		&m.LastUpdatedAt,
		&updatedBy,
	)
	if err != nil {
		return domain.Material{}, err
	}
	m.Code = code.String
	m.CreatedBy = createdBy.String
	m.LastUpdatedBy = updatedBy.String
	return mapping.ToDomainMaterial(m), nil
}

// SaveMaterial inserts a new material.
func (r *PgxMaterialRepository) SaveMaterial(ctx context.Context, material domain.Material) error {
	m := mapping.ToModelMaterial(material)
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MaterialID,
		m.Name,
		nullString(m.Code),
		m.Unit,
		m.Category,
		m.InitialStock,
		m.CurrentStock,
		m.MinimumAlert,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		nullString(m.CreatedBy),
		m.LastUpdatedAt,
		nullString(m.LastUpdatedBy),
	)
	if err != nil {
		err = classifyPgError(err)
		if errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: material named %q or coded %q already exists", apperrors.ErrDuplicate, m.Name, m.Code)
		}
		return fmt.Errorf("failed to save material %s: %w", m.MaterialID, err)
	}
	return nil
}

// FindMaterialByID retrieves a material by its ID, active or not.
func (r *PgxMaterialRepository) FindMaterialByID(ctx context.Context, materialID string) (*domain.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE material_id = $1;`
	material, err := scanMaterial(r.Pool.QueryRow(ctx, query, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: material %s", apperrors.ErrNotFound, materialID)
		}
		return nil, fmt.Errorf("failed to find material by ID %s: %w", materialID, err)
	}
	return &material, nil
}

// FindMaterialByIDForUpdate retrieves a material and locks its row.
// Must be called within a transaction.
func (r *PgxMaterialRepository) FindMaterialByIDForUpdate(ctx context.Context, tx pgx.Tx, materialID string) (*domain.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE material_id = $1 FOR UPDATE;`
	material, err := scanMaterial(tx.QueryRow(ctx, query, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: material %s", apperrors.ErrNotFound, materialID)
		}
		return nil, fmt.Errorf("failed to lock material %s: %w", materialID, classifyPgError(err))
	}
	return &material, nil
}

// FindMaterialByIDInTx retrieves a material inside tx without locking it.
func (r *PgxMaterialRepository) FindMaterialByIDInTx(ctx context.Context, tx pgx.Tx, materialID string) (*domain.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE material_id = $1;`
	material, err := scanMaterial(tx.QueryRow(ctx, query, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: material %s", apperrors.ErrNotFound, materialID)
		}
		return nil, fmt.Errorf("failed to find material by ID %s: %w", materialID, classifyPgError(err))
	}
	return &material, nil
}

// UpdateMaterialStockInTx writes a new stock value for a locked material.
func (r *PgxMaterialRepository) UpdateMaterialStockInTx(ctx context.Context, tx pgx.Tx, materialID string, stock decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE materials
		SET current_stock = $2, last_updated_at = $3, last_updated_by = $4
		WHERE material_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, materialID, stock, now, nullString(userID))
	if err != nil {
		return fmt.Errorf("failed to update stock of material %s: %w", materialID, classifyPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: material %s not found during stock update", apperrors.ErrNotFound, materialID)
	}
	return nil
}

// ListLowStock retrieves active materials at or below their alert threshold.
func (r *PgxMaterialRepository) ListLowStock(ctx context.Context, category domain.MaterialCategory) ([]domain.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE is_active = TRUE
		  AND current_stock <= minimum_alert
		  AND ($1::text = '' OR category = $1::text)
		ORDER BY current_stock ASC, name;
	`
	rows, err := r.Pool.Query(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock materials: %w", err)
	}
	defer rows.Close()

	materials := []domain.Material{}
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan low stock material row: %w", err)
		}
		materials = append(materials, material)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating low stock material rows: %w", err)
	}
	return materials, nil
}

// DeactivateMaterial marks a material as inactive.
func (r *PgxMaterialRepository) DeactivateMaterial(ctx context.Context, materialID string, userID string, now time.Time) error {
	query := `
		UPDATE materials
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE material_id = $1 AND is_active = TRUE;
	` // Only update if it was active

	cmdTag, err := r.Pool.Exec(ctx, query, materialID, now, nullString(userID))
	if err != nil {
		return fmt.Errorf("failed to execute deactivate material %s: %w", materialID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the material does not exist or it was already inactive.
		if _, findErr := r.FindMaterialByID(ctx, materialID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: material %s is already inactive", apperrors.ErrValidation, materialID)
	}
	return nil
}
