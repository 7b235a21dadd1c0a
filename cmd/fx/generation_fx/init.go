package generation_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"yatra/internal/config"
	"yatra/internal/services"
	"yatra/pkg/utils"
)

var Module = fx.Provide(
	ProvideGenerationClient,
	ProvideRetryController)

// ProvideGenerationClient selects the model backend from GENERATION_PROVIDER.
func ProvideGenerationClient(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (utils.GenerationClientInterface, error) {
	switch cfg.GenerationProvider {
	case "openai":
		log.Info("initializing generation client", zap.String("provider", "openai"), zap.String("model", cfg.OpenAIModel))
		return utils.NewOpenAIGenerationClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.GenerationTemperature), nil
	case "gemini":
		log.Info("initializing generation client", zap.String("provider", "gemini"), zap.String("model", cfg.GeminiModel))
		client, err := utils.NewGeminiGenerationClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GenerationTemperature)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.StopHook(client.Close))
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'openai' or 'gemini'", cfg.GenerationProvider)
	}
}

func ProvideRetryController(client utils.GenerationClientInterface, log *zap.Logger) *services.RetryController {
	return services.NewRetryController(client, log.Named("generation"))
}
