package models

import "time"

// AuditFields mirrors the audit columns shared by ledger tables.
// Empty actor strings are stored as NULL. The field set must stay identical to
// domain.AuditFields; the mappers convert between the two directly.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
