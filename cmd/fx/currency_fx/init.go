package currency_fx

import (
	"go.uber.org/fx"

	"tripdeck/internal/services"
)

var Module = fx.Provide(services.NewCurrencyService)
