package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger/internal/models"
	"github.com/SscSPs/farm_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for user lookups.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserReader {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserReader = (*PgxUserRepository)(nil)

// FindUserByID retrieves a user by ID, including soft deleted users.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, name, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM users
		WHERE user_id = $1;
	`
	var m models.User
	var createdBy, updatedBy sql.NullString
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.Name,
		&m.CreatedAt,
		&createdBy,
		&m.LastUpdatedAt,
		&updatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	m.CreatedBy = createdBy.String
	m.LastUpdatedBy = updatedBy.String

	user := mapping.ToDomainUser(m)
	return &user, nil
}
