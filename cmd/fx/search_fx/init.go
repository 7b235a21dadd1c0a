package search_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"yatra/internal/config"
	"yatra/pkg/utils"
)

var Module = fx.Provide(provideImageSearch)

func provideImageSearch(cfg *config.Config, log *zap.Logger) (utils.ImageSearchInterface, error) {
	if !cfg.ImageSearchEnabled() {
		log.Warn("custom search credentials missing, image lookup disabled")
		return utils.NoopImageSearch{}, nil
	}
	return utils.NewCustomSearchImageClient(context.Background(), cfg.CustomSearchKey, cfg.CustomSearchCX)
}
