package mapping

import (
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/SscSPs/farm_ledger/internal/models"
)

// ToModelMaterial converts a domain Material to a model Material
func ToModelMaterial(d domain.Material) models.Material {
	return models.Material{
		MaterialID:   d.MaterialID,
		Name:         d.Name,
		Code:         d.Code,
		Unit:         string(d.Unit),
		Category:     string(d.Category),
		InitialStock: d.InitialStock,
		CurrentStock: d.CurrentStock,
		MinimumAlert: d.MinimumAlert,
		Description:  d.Description,
		IsActive:     d.IsActive,
		AuditFields:  models.AuditFields(d.AuditFields),
	}
}

// ToDomainMaterial converts a model Material to a domain Material
func ToDomainMaterial(m models.Material) domain.Material {
	return domain.Material{
		MaterialID:   m.MaterialID,
		Name:         m.Name,
		Code:         m.Code,
		Unit:         domain.UnitOfMeasure(m.Unit),
		Category:     domain.MaterialCategory(m.Category),
		InitialStock: m.InitialStock,
		CurrentStock: m.CurrentStock,
		MinimumAlert: m.MinimumAlert,
		Description:  m.Description,
		IsActive:     m.IsActive,
		AuditFields:  domain.AuditFields(m.AuditFields),
	}
}

// ToDomainMaterialSlice converts a slice of model Materials to a slice of domain Materials
func ToDomainMaterialSlice(ms []models.Material) []domain.Material {
	ds := make([]domain.Material, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMaterial(m)
	}
	return ds
}
