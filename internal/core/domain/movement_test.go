package domain_test

import (
	"testing"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNextBalance(t *testing.T) {
	tests := []struct {
		name     string
		current  decimal.Decimal
		mvType   domain.MovementType
		quantity decimal.Decimal
		want     decimal.Decimal
		wantOK   bool
	}{
		{name: "increase adds", current: dec("100"), mvType: domain.MovementIncrease, quantity: dec("25.5"), want: dec("125.5"), wantOK: true},
		{name: "decrease subtracts", current: dec("100"), mvType: domain.MovementDecrease, quantity: dec("30"), want: dec("70"), wantOK: true},
		{name: "decrease to exactly zero", current: dec("70"), mvType: domain.MovementDecrease, quantity: dec("70"), want: dec("0"), wantOK: true},
		{name: "decrease below zero rejected", current: dec("70"), mvType: domain.MovementDecrease, quantity: dec("80"), want: dec("70"), wantOK: false},
		{name: "reset sets exact quantity", current: dec("70"), mvType: domain.MovementReset, quantity: dec("12"), want: dec("12"), wantOK: true},
		{name: "reset below current", current: dec("500"), mvType: domain.MovementReset, quantity: dec("0.5"), want: dec("0.5"), wantOK: true},
		{name: "unknown type rejected", current: dec("10"), mvType: domain.MovementType("TRANSFER"), quantity: dec("1"), want: dec("10"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.NextBalance(tt.current, tt.mvType, tt.quantity)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestMovementRecord_IsLinked(t *testing.T) {
	assert.False(t, domain.MovementRecord{}.IsLinked())
	assert.True(t, domain.MovementRecord{LinkedExpenseID: "exp-1"}.IsLinked())
}
