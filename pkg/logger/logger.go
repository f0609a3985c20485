package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tripdeck/internal/config"
)

// New builds the process logger. Development and "text" format use the colored
// console encoder, everything else writes JSON lines to stdout.
func New(cfg *config.Config) *zap.Logger {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.LoggerLevel))

	core := zapcore.NewCore(buildEncoder(cfg), zapcore.AddSync(os.Stdout), level)
	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	zap.ReplaceGlobals(l)
	l.Info("Logger initialized",
		zap.String("level", strings.ToUpper(cfg.LoggerLevel)),
		zap.String("format", cfg.LoggerFormat),
		zap.String("environment", cfg.Environment),
	)
	return l
}

func buildEncoder(cfg *config.Config) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if cfg.IsDevelopment() || strings.EqualFold(cfg.LoggerFormat, "text") {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
