package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"yatra/internal/config"
	"yatra/internal/services"
	"yatra/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(config.Load, provideLogger, provideGenerationSettings),
)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	undo := zap.ReplaceGlobals(log)
	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
		undo()
	}))
	return log, nil
}

func provideGenerationSettings(cfg *config.Config) services.GenerationSettings {
	return services.GenerationSettings{
		Country:     cfg.DestinationCountry,
		Currency:    cfg.Currency,
		MaxAttempts: cfg.MaxGenerationAttempts,
	}
}
