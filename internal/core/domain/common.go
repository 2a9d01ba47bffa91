package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy and LastUpdatedBy are empty when the change was made anonymously.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy,omitempty"`
}

// NewAuditFields stamps creation and update fields with the same actor and instant.
func NewAuditFields(actorID string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
}
