package expense_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripdeck/internal/repositories"
	"tripdeck/internal/services"
)

var Module = fx.Provide(
	provideExpenseRepo, services.NewExpenseService)

func provideExpenseRepo(db *gorm.DB) repositories.ExpenseRepository {
	return repositories.NewExpenseRepository(db)
}
