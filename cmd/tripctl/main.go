package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripdeck/internal/config"
	"tripdeck/internal/infra"
	"tripdeck/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Maintenance commands for the itinerary database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSeedCmd(), newVerifyCmd(), newDebugInsertCmd())
	return root
}

// openDB connects with the same settings the server uses.
func openDB() (*gorm.DB, *zap.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.New(cfg)

	db, err := infra.InitPostgresql(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := infra.Migrate(db, cfg.NotifyChannel); err != nil {
			return nil, nil, nil, err
		}
	}
	return db, log, func() {
		infra.ClosePostgresql(db, log)
		_ = log.Sync()
	}, nil
}
