package mapping_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/SscSPs/farm_ledger/internal/utils/mapping"
)

func TestMaterialMappingKeepsAuditFields(t *testing.T) {
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	d := domain.Material{
		MaterialID:   "m1",
		Name:         "Cement",
		Unit:         domain.UnitOfMeasure("bag"),
		Category:     domain.CategoryConstruction,
		InitialStock: decimal.NewFromInt(10),
		CurrentStock: decimal.NewFromInt(7),
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     created,
			CreatedBy:     "u1",
			LastUpdatedAt: created.Add(time.Hour),
			LastUpdatedBy: "u2",
		},
	}

	m := mapping.ToModelMaterial(d)
	assert.Equal(t, "u1", m.CreatedBy)
	assert.Equal(t, created.Add(time.Hour), m.LastUpdatedAt)

	back := mapping.ToDomainMaterial(m)
	assert.Equal(t, d.AuditFields, back.AuditFields)
	assert.True(t, back.CurrentStock.Equal(d.CurrentStock))
}
