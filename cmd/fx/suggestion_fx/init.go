package suggestion_fx

import (
	"go.uber.org/fx"

	"yatra/internal/services"
)

var Module = fx.Provide(
	services.NewRecommendationValidator,
	services.NewFashionService,
	services.NewProviderService)
