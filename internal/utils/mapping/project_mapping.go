package mapping

import (
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/SscSPs/farm_ledger/internal/models"
)

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:        d.ProjectID,
		Name:             d.Name,
		BudgetAllocation: d.BudgetAllocation,
		StartDate:        d.StartDate,
		Description:      d.Description,
		IsActive:         d.IsActive,
		AuditFields:      models.AuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:        m.ProjectID,
		Name:             m.Name,
		BudgetAllocation: m.BudgetAllocation,
		StartDate:        m.StartDate,
		Description:      m.Description,
		IsActive:         m.IsActive,
		AuditFields:      domain.AuditFields(m.AuditFields),
	}
}
