package config_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripdeck/internal/config"
	"tripdeck/pkg/logger"
	"tripdeck/pkg/utils"
)

var Module = fx.Provide(
	config.Load, provideLogger, provideTokenIssuer)

func provideLogger(cfg *config.Config) *zap.Logger {
	return logger.New(cfg)
}

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpireMinutes)*time.Minute)
}
