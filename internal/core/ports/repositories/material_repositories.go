package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// MaterialReader defines read operations for material data
type MaterialReader interface {
	// FindMaterialByID retrieves a material by ID without locking it.
	FindMaterialByID(ctx context.Context, materialID string) (*domain.Material, error)

	// ListLowStock retrieves active materials whose stock is at or below their alert threshold.
	// An empty category returns all categories.
	ListLowStock(ctx context.Context, category domain.MaterialCategory) ([]domain.Material, error)
}

// MaterialWriter defines write operations for material data
type MaterialWriter interface {
	// SaveMaterial persists a new material.
	SaveMaterial(ctx context.Context, material domain.Material) error

	// DeactivateMaterial marks a material as inactive.
	DeactivateMaterial(ctx context.Context, materialID string, userID string, now time.Time) error
}

// MaterialTransactionSupport defines operations used inside a ledger transaction
type MaterialTransactionSupport interface {
	// FindMaterialByIDForUpdate selects a material and locks its row until the transaction ends.
	FindMaterialByIDForUpdate(ctx context.Context, tx pgx.Tx, materialID string) (*domain.Material, error)

	// FindMaterialByIDInTx selects a material inside tx without locking it.
	FindMaterialByIDInTx(ctx context.Context, tx pgx.Tx, materialID string) (*domain.Material, error)

	// UpdateMaterialStockInTx writes the new stock of a locked material.
	UpdateMaterialStockInTx(ctx context.Context, tx pgx.Tx, materialID string, stock decimal.Decimal, userID string, now time.Time) error
}

// MaterialRepositoryFacade combines all material-related repository interfaces
type MaterialRepositoryFacade interface {
	MaterialReader
	MaterialWriter
	MaterialTransactionSupport
}
