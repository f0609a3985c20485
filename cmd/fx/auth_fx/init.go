package auth_fx

import (
	"go.uber.org/fx"

	"tripdeck/internal/services"
)

var Module = fx.Provide(services.NewAuthService)
