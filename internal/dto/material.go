package dto

import (
	"time"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMaterialRequest defines the data needed to register a new material.
type CreateMaterialRequest struct {
	Name         string                  `json:"name" binding:"required,max=150"`
	Code         string                  `json:"code" binding:"max=50"`
	Unit         domain.UnitOfMeasure    `json:"unit" binding:"required,oneof=BAG PIECE CUBIC_METER KILO LITER GLOBAL"`
	Category     domain.MaterialCategory `json:"category" binding:"required,oneof=CONSTRUCTION FARM"`
	InitialStock decimal.Decimal         `json:"initialStock" binding:"dnonneg"`
	MinimumAlert *decimal.Decimal        `json:"minimumAlert"` // Optional, defaults to 5
	Description  string                  `json:"description"`
}

// MaterialResponse defines the data returned for a material.
type MaterialResponse struct {
	MaterialID      string                  `json:"materialID"`
	Name            string                  `json:"name"`
	Code            string                  `json:"code,omitempty"`
	Unit            domain.UnitOfMeasure    `json:"unit"`
	Category        domain.MaterialCategory `json:"category"`
	InitialStock    decimal.Decimal         `json:"initialStock"`
	CurrentStock    decimal.Decimal         `json:"currentStock"`
	MinimumAlert    decimal.Decimal         `json:"minimumAlert"`
	StockPercentage decimal.Decimal         `json:"stockPercentage"`
	IsLowStock      bool                    `json:"isLowStock"`
	Description     string                  `json:"description,omitempty"`
	IsActive        bool                    `json:"isActive"`
	CreatedAt       time.Time               `json:"createdAt"`
	CreatedBy       string                  `json:"createdBy,omitempty"`
	LastUpdatedAt   time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy   string                  `json:"lastUpdatedBy,omitempty"`
}

// MaterialBalanceResponse is the latest committed stock of a material.
type MaterialBalanceResponse struct {
	MaterialID string          `json:"materialID"`
	Balance    decimal.Decimal `json:"balance"`
}

// ListLowStockParams defines query parameters for the low stock listing.
type ListLowStockParams struct {
	Category string `form:"category" binding:"omitempty,oneof=CONSTRUCTION FARM"`
}

// ToMaterialResponse converts a domain.Material to MaterialResponse DTO
func ToMaterialResponse(m *domain.Material) MaterialResponse {
	return MaterialResponse{
		MaterialID:      m.MaterialID,
		Name:            m.Name,
		Code:            m.Code,
		Unit:            m.Unit,
		Category:        m.Category,
		InitialStock:    m.InitialStock,
		CurrentStock:    m.CurrentStock,
		MinimumAlert:    m.MinimumAlert,
		StockPercentage: m.StockPercentage(),
		IsLowStock:      m.IsLowStock(),
		Description:     m.Description,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
		LastUpdatedAt:   m.LastUpdatedAt,
		LastUpdatedBy:   m.LastUpdatedBy,
	}
}

// ToListMaterialResponse converts a slice of domain.Material to a slice of MaterialResponse DTOs
func ToListMaterialResponse(materials []domain.Material) []MaterialResponse {
	res := make([]MaterialResponse, len(materials))
	for i := range materials {
		res[i] = ToMaterialResponse(&materials[i])
	}
	return res
}
