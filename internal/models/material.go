package models

import "github.com/shopspring/decimal"

// Material is the row shape of the materials table.
type Material struct {
	MaterialID   string          `db:"material_id"`
	Name         string          `db:"name"`
	Code         string          `db:"code"` // Nullable, unique when set
	Unit         string          `db:"unit"`
	Category     string          `db:"category"`
	InitialStock decimal.Decimal `db:"initial_stock"`
	CurrentStock decimal.Decimal `db:"current_stock"`
	MinimumAlert decimal.Decimal `db:"minimum_alert"`
	Description  string          `db:"description"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
