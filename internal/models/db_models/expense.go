package db_models

import "github.com/shopspring/decimal"

type ExpenseCategory string

const (
	ExpenseFood          ExpenseCategory = "FOOD"
	ExpenseTransport     ExpenseCategory = "TRANSPORT"
	ExpenseAccommodation ExpenseCategory = "ACCOMMODATION"
	ExpenseActivity      ExpenseCategory = "ACTIVITY"
	ExpenseShopping      ExpenseCategory = "SHOPPING"
	ExpenseOther         ExpenseCategory = "OTHER"
)

// ExpenseCategories is the display order used by summaries.
var ExpenseCategories = []ExpenseCategory{
	ExpenseFood, ExpenseTransport, ExpenseAccommodation, ExpenseActivity, ExpenseShopping, ExpenseOther,
}

func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

type Expense struct {
	BaseModel
	DayID            string           `gorm:"column:day_id;index"`
	ItemID           *string          `gorm:"column:item_id"`
	Category         ExpenseCategory  `gorm:"type:text"`
	Amount           decimal.Decimal  `gorm:"type:numeric(14,2)"`
	Currency         string           `gorm:"type:varchar(3)"`
	OriginalAmount   *decimal.Decimal `gorm:"column:original_amount;type:numeric(14,2)"`
	OriginalCurrency *string          `gorm:"column:original_currency;type:varchar(3)"`
	Description      *string
}

func (Expense) TableName() string { return "expenses" }
