package controllers_fx

import (
	"go.uber.org/fx"

	"tripdeck/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewScheduleController),
	fx.Provide(controllers.NewExpenseController),
	fx.Provide(controllers.NewCurrencyController),
	fx.Provide(controllers.NewEnrichController),
	fx.Provide(controllers.NewImageController))
