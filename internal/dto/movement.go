package dto

import (
	"time"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyMovementRequest defines a stock change submitted against a material.
type ApplyMovementRequest struct {
	Type            domain.MovementType `json:"type" binding:"required,oneof=INCREASE DECREASE RESET"`
	Quantity        decimal.Decimal     `json:"quantity" binding:"dpos"`
	LinkedExpenseID *string             `json:"linkedExpenseID"` // Optional, construction materials only
	Note            string              `json:"note" binding:"max=500"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID      string              `json:"movementID"`
	MaterialID      string              `json:"materialID"`
	Type            domain.MovementType `json:"type"`
	Quantity        decimal.Decimal     `json:"quantity"`
	BalanceAfter    decimal.Decimal     `json:"balanceAfter"`
	LinkedExpenseID string              `json:"linkedExpenseID,omitempty"`
	Note            string              `json:"note,omitempty"`
	RecordedAt      time.Time           `json:"recordedAt"`
	RecordedBy      string              `json:"recordedBy,omitempty"`
}

// ListMovementsParams defines query parameters for listing a material's movements.
type ListMovementsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// BalanceAuditResponse reports whether a stored balance matches its replayed log.
type BalanceAuditResponse struct {
	MaterialID      string          `json:"materialID"`
	StoredBalance   decimal.Decimal `json:"storedBalance"`
	ReplayedBalance decimal.Decimal `json:"replayedBalance"`
	MovementsUsed   int             `json:"movementsUsed"`
	Consistent      bool            `json:"consistent"`
}

// ToMovementResponse converts a domain.MovementRecord to MovementResponse DTO.
func ToMovementResponse(mv *domain.MovementRecord) MovementResponse {
	return MovementResponse{
		MovementID:      mv.MovementID,
		MaterialID:      mv.MaterialID,
		Type:            mv.Type,
		Quantity:        mv.Quantity,
		BalanceAfter:    mv.BalanceAfter,
		LinkedExpenseID: mv.LinkedExpenseID,
		Note:            mv.Note,
		RecordedAt:      mv.RecordedAt,
		RecordedBy:      mv.RecordedBy,
	}
}

// ToListMovementsResponse converts a page of movements.
func ToListMovementsResponse(movements []domain.MovementRecord, nextToken *string) ListMovementsResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i])
	}
	return ListMovementsResponse{Movements: res, NextToken: nextToken}
}

// ToBalanceAuditResponse converts a domain.BalanceAudit.
func ToBalanceAuditResponse(a *domain.BalanceAudit) BalanceAuditResponse {
	return BalanceAuditResponse{
		MaterialID:      a.MaterialID,
		StoredBalance:   a.StoredBalance,
		ReplayedBalance: a.ReplayedBalance,
		MovementsUsed:   a.MovementsUsed,
		Consistent:      a.Consistent,
	}
}
