package notify_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripdeck/internal/config"
	"tripdeck/internal/infra"
	"tripdeck/internal/services"
)

// Module drops cached schedule and expense state whenever another writer
// changes the tables.
var Module = fx.Invoke(listenForChanges)

func listenForChanges(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	schedule services.ScheduleServiceInterface,
	expenses services.ExpenseServiceInterface,
) {
	if !cfg.ListenForChanges {
		return
	}

	var (
		listener *infra.ChangeListener
		cancel   context.CancelFunc
	)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			l, err := infra.NewChangeListener(cfg.PostgresURL, cfg.NotifyChannel, log, func(table string) {
				switch table {
				case "expenses":
					expenses.Invalidate()
				case "days", "itinerary_items":
					schedule.Invalidate()
				default:
					schedule.Invalidate()
					expenses.Invalidate()
				}
			})
			if err != nil {
				log.Warn("change listener disabled", zap.Error(err))
				return nil
			}
			listener = l

			var runCtx context.Context
			runCtx, cancel = context.WithCancel(context.Background())
			go listener.Run(runCtx)
			log.Info("listening for itinerary changes", zap.String("channel", cfg.NotifyChannel))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if listener == nil {
				return nil
			}
			cancel()
			return listener.Close()
		},
	})
}
