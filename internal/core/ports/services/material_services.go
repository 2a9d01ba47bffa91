package services

import (
	"context"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/SscSPs/farm_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// MaterialReaderSvc defines read operations on material balances
type MaterialReaderSvc interface {
	// GetMaterial retrieves a material, active or not.
	GetMaterial(ctx context.Context, materialID string) (*domain.Material, error)

	// GetBalance returns the latest committed stock of a material without locking it.
	GetBalance(ctx context.Context, materialID string) (decimal.Decimal, error)

	// ListLowStock lists active materials at or below their alert threshold.
	// An empty category lists all categories.
	ListLowStock(ctx context.Context, category domain.MaterialCategory) ([]domain.Material, error)

	// ListMovements lists a material's movement log, newest first.
	ListMovements(ctx context.Context, materialID string, limit int, nextToken *string) ([]domain.MovementRecord, *string, error)

	// VerifyBalance replays the movement log and compares the result with the stored stock.
	VerifyBalance(ctx context.Context, materialID string) (*domain.BalanceAudit, error)
}

// MaterialWriterSvc defines administrative write operations on materials
type MaterialWriterSvc interface {
	CreateMaterial(ctx context.Context, req dto.CreateMaterialRequest, actorID string) (*domain.Material, error)
	DeactivateMaterial(ctx context.Context, materialID string, actorID string) error
}

// MaterialLedgerSvc applies stock movements. At most one movement per material is in flight.
type MaterialLedgerSvc interface {
	// ApplyMovement locks the material, computes the new balance and appends the movement
	// in one transaction. A decrease below zero fails with *apperrors.InsufficientStockError
	// and writes nothing.
	ApplyMovement(ctx context.Context, materialID string, req dto.ApplyMovementRequest, actorID string) (*domain.MovementRecord, error)
}

// MaterialSvcFacade combines all material-related service interfaces
type MaterialSvcFacade interface {
	MaterialReaderSvc
	MaterialWriterSvc
	MaterialLedgerSvc
}
