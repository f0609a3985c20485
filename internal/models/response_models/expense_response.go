package response_models

import (
	"github.com/shopspring/decimal"

	"tripdeck/internal/models/db_models"
)

type ExpenseView struct {
	ID               string           `json:"id"`
	DayID            string           `json:"day_id"`
	ItemID           *string          `json:"item_id,omitempty"`
	Category         string           `json:"category"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	OriginalAmount   *decimal.Decimal `json:"original_amount,omitempty"`
	OriginalCurrency *string          `json:"original_currency,omitempty"`
	Description      *string          `json:"description,omitempty"`
	CreatedAt        int64            `json:"created_at"`
}

func NewExpenseView(e db_models.Expense) ExpenseView {
	return ExpenseView{
		ID:               e.ID,
		DayID:            e.DayID,
		ItemID:           e.ItemID,
		Category:         string(e.Category),
		Amount:           e.Amount,
		Currency:         e.Currency,
		OriginalAmount:   e.OriginalAmount,
		OriginalCurrency: e.OriginalCurrency,
		Description:      e.Description,
		CreatedAt:        e.CreatedAt,
	}
}

type CurrencyTotal struct {
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Totals   []CurrencyTotal `json:"totals"`
}

type DayTotal struct {
	DayID  string          `json:"day_id"`
	Count  int             `json:"count"`
	Totals []CurrencyTotal `json:"totals"`
}

// ExpenseSummary is derived from the fetched expenses on every request.
type ExpenseSummary struct {
	Count      int             `json:"count"`
	Totals     []CurrencyTotal `json:"totals"`
	ByCategory []CategoryTotal `json:"by_category"`
	ByDay      []DayTotal      `json:"by_day"`
}
