package schedule_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripdeck/internal/repositories"
	"tripdeck/internal/services"
)

var Module = fx.Provide(
	provideDayRepo, provideItemRepo, services.NewScheduleService)

func provideDayRepo(db *gorm.DB) repositories.DayRepository {
	return repositories.NewDayRepository(db)
}

func provideItemRepo(db *gorm.DB) repositories.ItemRepository {
	return repositories.NewItemRepository(db)
}
