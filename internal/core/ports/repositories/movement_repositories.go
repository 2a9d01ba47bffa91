package repositories

import (
	"context"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MovementReader defines read operations for the movement log
type MovementReader interface {
	// ListMovementsByMaterial retrieves a page of a material's movements, newest first.
	// It returns the movements, a token for the next page, and an error.
	ListMovementsByMaterial(ctx context.Context, materialID string, limit int, nextToken *string) ([]domain.MovementRecord, *string, error)
}

// MovementTransactionSupport defines log access performed inside a transaction
type MovementTransactionSupport interface {
	// SaveMovementInTx appends a movement to the log.
	SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.MovementRecord) error

	// ListReplayMovementsInTx retrieves the movements needed to rebuild a material's balance,
	// oldest first, starting at the most recent RESET if there is one.
	ListReplayMovementsInTx(ctx context.Context, tx pgx.Tx, materialID string) ([]domain.MovementRecord, error)
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementTransactionSupport
}
