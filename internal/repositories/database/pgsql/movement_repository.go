package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger/internal/models"
	"github.com/SscSPs/farm_ledger/internal/utils/mapping"
	"github.com/SscSPs/farm_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const movementColumns = `seq, movement_id, material_id, movement_type, quantity, balance_after, linked_expense_id, note, recorded_at, recorded_by`

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for the material movement log.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

func scanMovement(row pgx.Row) (models.MovementRecord, error) {
	var m models.MovementRecord
	var linked, recordedBy sql.NullString
	err := row.Scan(
		&m.Seq,
		&m.MovementID,
		&m.MaterialID,
		&m.MovementType,
		&m.Quantity,
		&m.BalanceAfter,
		&linked,
		&m.Note,
		&m.RecordedAt,
		&recordedBy,
	)
	if err != nil {
		return models.MovementRecord{}, err
	}
	m.LinkedExpenseID = linked.String
	m.RecordedBy = recordedBy.String
	return m, nil
}

// SaveMovementInTx appends a movement to the log within the caller's transaction.
func (r *PgxMovementRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.MovementRecord) error {
	m := mapping.ToModelMovement(movement)
	query := `
		INSERT INTO material_movements (movement_id, material_id, movement_type, quantity, balance_after, linked_expense_id, note, recorded_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.MaterialID,
		m.MovementType,
		m.Quantity,
		m.BalanceAfter,
		nullString(m.LinkedExpenseID),
		m.Note,
		m.RecordedAt,
		nullString(m.RecordedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to append movement %s for material %s: %w", m.MovementID, m.MaterialID, classifyPgError(err))
	}
	return nil
}

// ListMovementsByMaterial retrieves a page of a material's movements, newest first.
func (r *PgxMovementRepository) ListMovementsByMaterial(ctx context.Context, materialID string, limit int, nextToken *string) ([]domain.MovementRecord, *string, error) {
	limit = pagination.ClampLimit(limit)
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	args := []any{materialID}
	query := `SELECT ` + movementColumns + ` FROM material_movements WHERE material_id = $1`
	if nextToken != nil && *nextToken != "" {
		beforeSeq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		args = append(args, beforeSeq)
		query += ` AND seq < $2`
	}
	query += ` ORDER BY seq DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query movements for material %s: %w", materialID, err)
	}
	defer rows.Close()

	page := make([]models.MovementRecord, 0, fetchLimit)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan movement row for material %s: %w", materialID, err)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating movement rows for material %s: %w", materialID, err)
	}

	var next *string
	if len(page) > limit {
		page = page[:limit]
		token := pagination.EncodeSequenceToken(page[len(page)-1].Seq)
		next = &token
	}
	return mapping.ToDomainMovementSlice(page), next, nil
}

// ListReplayMovementsInTx retrieves the movements from the last RESET onward, oldest first.
func (r *PgxMovementRepository) ListReplayMovementsInTx(ctx context.Context, tx pgx.Tx, materialID string) ([]domain.MovementRecord, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM material_movements
		WHERE material_id = $1
		  AND seq >= COALESCE(
		      (SELECT MAX(seq) FROM material_movements WHERE material_id = $1 AND movement_type = 'RESET'), 0)
		ORDER BY seq ASC;
	`
	rows, err := tx.Query(ctx, query, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to query replay movements for material %s: %w", materialID, err)
	}
	defer rows.Close()

	movements := []models.MovementRecord{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan replay movement for material %s: %w", materialID, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating replay movements for material %s: %w", materialID, err)
	}
	return mapping.ToDomainMovementSlice(movements), nil
}
