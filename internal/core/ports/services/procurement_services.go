package services

import (
	"context"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/SscSPs/farm_ledger/internal/dto"
)

// ProcurementSvc records purchases that touch both ledgers.
type ProcurementSvc interface {
	// RecordMaterialPurchase registers the expense and the linked stock increase atomically.
	// The project row is locked before the material row.
	RecordMaterialPurchase(ctx context.Context, projectID string, req dto.RecordPurchaseRequest, actorID string) (*domain.Expense, *domain.MovementRecord, error)
}
