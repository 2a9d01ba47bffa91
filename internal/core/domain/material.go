package domain

import (
	"github.com/shopspring/decimal"
)

// MaterialCategory separates construction supplies from farm supplies.
// Only construction materials may be linked to project expenses.
type MaterialCategory string

const (
	CategoryConstruction MaterialCategory = "CONSTRUCTION"
	CategoryFarm         MaterialCategory = "FARM"
)

// IsValid reports whether c is a known category.
func (c MaterialCategory) IsValid() bool {
	return c == CategoryConstruction || c == CategoryFarm
}

// UnitOfMeasure is the unit a material's stock is counted in.
type UnitOfMeasure string

const (
	UnitBag        UnitOfMeasure = "BAG"
	UnitPiece      UnitOfMeasure = "PIECE"
	UnitCubicMeter UnitOfMeasure = "CUBIC_METER"
	UnitKilo       UnitOfMeasure = "KILO"
	UnitLiter      UnitOfMeasure = "LITER"
	UnitGlobal     UnitOfMeasure = "GLOBAL"
)

// IsValid reports whether u is a known unit.
func (u UnitOfMeasure) IsValid() bool {
	switch u {
	case UnitBag, UnitPiece, UnitCubicMeter, UnitKilo, UnitLiter, UnitGlobal:
		return true
	}
	return false
}

// DefaultMinimumAlert is the low stock threshold applied when none is given.
var DefaultMinimumAlert = decimal.NewFromInt(5)

// Material is an inventory item whose stock is governed by the material ledger.
// CurrentStock is derived state: it only changes through applied movements.
type Material struct {
	MaterialID   string           `json:"materialID"`
	Name         string           `json:"name"`
	Code         string           `json:"code,omitempty"`
	Unit         UnitOfMeasure    `json:"unit"`
	Category     MaterialCategory `json:"category"`
	InitialStock decimal.Decimal  `json:"initialStock"`
	CurrentStock decimal.Decimal  `json:"currentStock"`
	MinimumAlert decimal.Decimal  `json:"minimumAlert"`
	Description  string           `json:"description,omitempty"`
	IsActive     bool             `json:"isActive"`
	AuditFields
}

// IsLowStock reports whether the current stock is at or below the alert threshold.
func (m Material) IsLowStock() bool {
	return m.CurrentStock.LessThanOrEqual(m.MinimumAlert)
}

// StockPercentage expresses current stock against twice the alert threshold, capped at 100.
// A material without a threshold is always reported as fully stocked.
func (m Material) StockPercentage() decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if !m.MinimumAlert.IsPositive() {
		return hundred
	}
	pct := m.CurrentStock.Div(m.MinimumAlert.Mul(decimal.NewFromInt(2))).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}

// BalanceAudit compares a stored balance with the value obtained by replaying its log.
type BalanceAudit struct {
	MaterialID      string          `json:"materialID"`
	StoredBalance   decimal.Decimal `json:"storedBalance"`
	ReplayedBalance decimal.Decimal `json:"replayedBalance"`
	MovementsUsed   int             `json:"movementsUsed"`
	Consistent      bool            `json:"consistent"`
}
