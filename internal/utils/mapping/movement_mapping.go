package mapping

import (
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/SscSPs/farm_ledger/internal/models"
)

// ToModelMovement converts a domain MovementRecord to a model MovementRecord.
// Seq is left unset; the database assigns it.
func ToModelMovement(d domain.MovementRecord) models.MovementRecord {
	return models.MovementRecord{
		MovementID:      d.MovementID,
		MaterialID:      d.MaterialID,
		MovementType:    string(d.Type),
		Quantity:        d.Quantity,
		BalanceAfter:    d.BalanceAfter,
		LinkedExpenseID: d.LinkedExpenseID,
		Note:            d.Note,
		RecordedAt:      d.RecordedAt,
		RecordedBy:      d.RecordedBy,
	}
}

// ToDomainMovement converts a model MovementRecord to a domain MovementRecord
func ToDomainMovement(m models.MovementRecord) domain.MovementRecord {
	return domain.MovementRecord{
		MovementID:      m.MovementID,
		MaterialID:      m.MaterialID,
		Type:            domain.MovementType(m.MovementType),
		Quantity:        m.Quantity,
		BalanceAfter:    m.BalanceAfter,
		LinkedExpenseID: m.LinkedExpenseID,
		Note:            m.Note,
		RecordedAt:      m.RecordedAt,
		RecordedBy:      m.RecordedBy,
	}
}

// ToDomainMovementSlice converts a slice of model MovementRecords to domain MovementRecords
func ToDomainMovementSlice(ms []models.MovementRecord) []domain.MovementRecord {
	ds := make([]domain.MovementRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
