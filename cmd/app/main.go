package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tripdeck/cmd/fx/auth_fx"
	"tripdeck/cmd/fx/cache_fx"
	"tripdeck/cmd/fx/config_fx"
	"tripdeck/cmd/fx/controllers_fx"
	"tripdeck/cmd/fx/currency_fx"
	"tripdeck/cmd/fx/db_fx"
	"tripdeck/cmd/fx/enrich_fx"
	"tripdeck/cmd/fx/expense_fx"
	"tripdeck/cmd/fx/memcache_fx"
	"tripdeck/cmd/fx/notify_fx"
	"tripdeck/cmd/fx/route_fx"
	"tripdeck/cmd/fx/schedule_fx"
	"tripdeck/cmd/fx/storage_fx"
	"tripdeck/internal/api/controllers"
	"tripdeck/internal/config"
	"tripdeck/internal/storage"
	"tripdeck/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		db_fx.Module,
		memcache_fx.Module,
		cache_fx.Module,
		currency_fx.Module,
		route_fx.Module,
		storage_fx.Module,
		schedule_fx.Module,
		expense_fx.Module,
		enrich_fx.Module,
		auth_fx.Module,
		controllers_fx.Module,
		notify_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOriginList(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           600,
	}).Handler(engine)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(cfg *config.Config, log *zap.Logger, store *storage.FileStore, rt controllers.Router) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.Static(storage.PublicPrefix, store.Dir())

	controllers.RegisterRoutes(r, rt)

	return r
}
