package mapping

import (
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/SscSPs/farm_ledger/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		Name:        m.Name,
		AuditFields: domain.AuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}
