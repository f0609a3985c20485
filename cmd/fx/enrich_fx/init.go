package enrich_fx

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripdeck/internal/config"
	"tripdeck/internal/repositories"
	"tripdeck/internal/services"
	"tripdeck/pkg/utils"
)

var Module = fx.Provide(
	provideTextGenerator, provideEnrichService)

// provideTextGenerator yields nil when no key is configured for the chosen provider.
func provideTextGenerator(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (utils.TextGenerator, error) {
	apiKey, model := cfg.GeminiAPIKey, cfg.GeminiModel
	if strings.EqualFold(cfg.AIProvider, "openai") {
		apiKey, model = cfg.OpenAIAPIKey, cfg.OpenAIModel
	}

	gen, err := utils.NewTextGenerator(cfg.AIProvider, apiKey, model)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		log.Warn("AI enrichment disabled", zap.String("provider", cfg.AIProvider))
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return gen.Close()
		},
	})
	return gen, nil
}

func provideEnrichService(
	gen utils.TextGenerator,
	itemRepo repositories.ItemRepository,
	routes services.RouteServiceInterface,
	cfg *config.Config,
	log *zap.Logger,
) services.EnrichServiceInterface {
	var geocoder services.Geocoder
	if cfg.GoogleMapsAPIKey != "" {
		geocoder = routes
	}
	return services.NewEnrichService(gen, itemRepo, geocoder, log)
}
