package dto

import (
	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest charges a material purchase to a project and receives it into stock.
type RecordPurchaseRequest struct {
	MaterialID string                 `json:"materialID" binding:"required"`
	Quantity   decimal.Decimal        `json:"quantity" binding:"dpos"`
	Note       string                 `json:"note" binding:"max=500"`
	Expense    RegisterExpenseRequest `json:"expense"`
}

// PurchaseResponse holds both records written by a purchase.
type PurchaseResponse struct {
	Expense  ExpenseResponse  `json:"expense"`
	Movement MovementResponse `json:"movement"`
}
