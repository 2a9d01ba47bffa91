package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management.
// Row locks taken inside a transaction are held until Commit or Rollback.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// BeginSnapshot starts a read-only transaction in which every read sees the same
	// committed state. It takes no row locks.
	BeginSnapshot(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
