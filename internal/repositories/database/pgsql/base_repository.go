package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes the ledger reacts to.
const (
	pgLockNotAvailable     = "55P03"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
	pgQueryCanceled        = "57014"
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgNumericOutOfRange    = "22003"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// NewTransactionManager exposes the pool's transaction handling to services.
func NewTransactionManager(pool *pgxpool.Pool) portsrepo.TransactionManager {
	return &BaseRepository{Pool: pool}
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", classifyPgError(err))
	}
	return tx, nil
}

// BeginSnapshot starts a read-only REPEATABLE READ transaction.
func (r *BaseRepository) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin snapshot transaction", classifyPgError(err))
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", classifyPgError(err))
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// classifyPgError maps lock, constraint and range failures onto application errors.
// Anything else is returned unchanged.
func classifyPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected, pgSerializationFailure, pgQueryCanceled:
			return fmt.Errorf("%w: %s", apperrors.ErrConcurrencyTimeout, pgErr.Message)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.Detail)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.Detail)
		case pgCheckViolation:
			return fmt.Errorf("%w: constraint %s violated", apperrors.ErrValidation, pgErr.ConstraintName)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: value out of range", apperrors.ErrValidation)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperrors.ErrConcurrencyTimeout, err)
	}
	return err
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
