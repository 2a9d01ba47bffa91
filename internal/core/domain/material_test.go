package domain_test

import (
	"testing"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMaterial_IsLowStock(t *testing.T) {
	tests := []struct {
		name    string
		current string
		minimum string
		want    bool
	}{
		{name: "above threshold", current: "21", minimum: "20", want: false},
		{name: "at threshold", current: "20", minimum: "20", want: true},
		{name: "below threshold", current: "3", minimum: "20", want: true},
		{name: "zero threshold with stock", current: "1", minimum: "0", want: false},
		{name: "zero threshold and zero stock", current: "0", minimum: "0", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.Material{CurrentStock: dec(tt.current), MinimumAlert: dec(tt.minimum)}
			assert.Equal(t, tt.want, m.IsLowStock())
		})
	}
}

func TestMaterial_StockPercentage(t *testing.T) {
	tests := []struct {
		name    string
		current string
		minimum string
		want    string
	}{
		{name: "no threshold", current: "3", minimum: "0", want: "100"},
		{name: "half of double threshold", current: "10", minimum: "10", want: "50"},
		{name: "capped", current: "500", minimum: "10", want: "100"},
		{name: "rounded", current: "1", minimum: "3", want: "16.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.Material{CurrentStock: dec(tt.current), MinimumAlert: dec(tt.minimum)}
			got := m.StockPercentage()
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestCategoryAndUnitValidity(t *testing.T) {
	assert.True(t, domain.CategoryConstruction.IsValid())
	assert.True(t, domain.CategoryFarm.IsValid())
	assert.False(t, domain.MaterialCategory("TOOLS").IsValid())

	assert.True(t, domain.UnitCubicMeter.IsValid())
	assert.False(t, domain.UnitOfMeasure("TON").IsValid())

	assert.True(t, domain.DefaultMinimumAlert.Equal(decimal.NewFromInt(5)))
}
