package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	mem "tripdeck/pkg/memcache"
)

var Module = fx.Provide(provideTTLStore)

// provideTTLStore runs a sweeper so expired route and rate entries do not pile up.
func provideTTLStore(lc fx.Lifecycle, log *zap.Logger) mem.TTLStore {
	store := mem.NewTTLCache()
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(10 * time.Minute)
				defer ticker.Stop()
				for {
					select {
					case <-stop:
						return
					case <-ticker.C:
						if n := store.Sweep(); n > 0 {
							log.Debug("memcache sweep", zap.Int("removed", n))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
	return store
}
