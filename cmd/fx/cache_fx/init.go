package cache_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripdeck/internal/config"
	"tripdeck/internal/infra"
	"tripdeck/internal/services"
	mem "tripdeck/pkg/memcache"
)

var Module = fx.Provide(
	provideRedis, provideRateCache)

func provideRedis(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client, err := infra.InitRedis(cfg)
	if err != nil {
		return nil, err
	}
	if client == nil {
		log.Info("REDIS_ADDR not set, exchange rates are cached in memory")
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	log.Info("Redis connected", zap.String("addr", cfg.RedisAddr))
	return client, nil
}

func provideRateCache(cfg *config.Config, client *redis.Client, store mem.TTLStore) services.RateCache {
	if client == nil {
		return services.NewMemoryRateCache(store)
	}
	return services.NewRedisRateCache(client, cfg.RedisPrefix)
}
