package route_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripdeck/internal/config"
	"tripdeck/internal/services"
	mem "tripdeck/pkg/memcache"
)

var Module = fx.Provide(provideRouteService)

func provideRouteService(cfg *config.Config, cache mem.TTLStore, log *zap.Logger) services.RouteServiceInterface {
	return services.NewGoogleRouteClient(cfg, cache, log)
}
