package request_models

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	DayID            string           `json:"day_id" binding:"required"`
	ItemID           *string          `json:"item_id"`
	Category         string           `json:"category" binding:"required"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	OriginalAmount   *decimal.Decimal `json:"original_amount"`
	OriginalCurrency *string          `json:"original_currency"`
	Description      *string          `json:"description"`
}

type UpdateExpenseRequest struct {
	ItemID           *string          `json:"item_id"`
	Category         *string          `json:"category"`
	Amount           *decimal.Decimal `json:"amount"`
	Currency         *string          `json:"currency"`
	OriginalAmount   *decimal.Decimal `json:"original_amount"`
	OriginalCurrency *string          `json:"original_currency"`
	Description      *string          `json:"description"`
}
