package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"yatra/internal/models/request_models"
	"yatra/internal/models/response_models"
	"yatra/internal/repositories"
	"yatra/pkg/utils"
	"yatra/pkg/validation"
)

type FashionServiceInterface interface {
	SuggestFashion(ctx context.Context, q request_models.FashionSuggestionQuery) (*response_models.FashionPayload, error)
}

type FashionService struct {
	repo      repositories.ItineraryRepository
	retry     *RetryController
	validator *RecommendationValidator
	settings  GenerationSettings
	log       *zap.Logger
}

func NewFashionService(
	repo repositories.ItineraryRepository,
	retry *RetryController,
	validator *RecommendationValidator,
	settings GenerationSettings,
	log *zap.Logger,
) FashionServiceInterface {
	return &FashionService{
		repo:      repo,
		retry:     retry,
		validator: validator,
		settings:  settings,
		log:       log.Named("fashion"),
	}
}

func (s *FashionService) SuggestFashion(ctx context.Context, q request_models.FashionSuggestionQuery) (*response_models.FashionPayload, error) {
	city := strings.TrimSpace(q.City)
	if city == "" {
		return nil, utils.ErrInvalidInput
	}
	itineraryID, err := parseOptionalID(q.ItineraryID)
	if err != nil {
		return nil, err
	}
	budget := 0
	if q.Budget != nil {
		budget = *q.Budget
	}

	outcome, err := Generate(ctx, s.retry, GenerationPlan[response_models.RecommendationSet]{
		Kind:        validation.KindRecommendation,
		MaxAttempts: s.settings.MaxAttempts,
		Request:     fashionRequest(city, s.settings.Country, q.SeasonHint, budget),
		Validate:    func(doc map[string]any) error { return validation.ValidateRecommendations(doc) },
		Accept: func(ctx context.Context, doc map[string]any) (response_models.RecommendationSet, error) {
			return s.validator.Validate(ctx, doc, city, budget)
		},
	})
	if err != nil {
		return nil, err
	}

	payload := &response_models.FashionPayload{
		City:        city,
		SeasonHint:  q.SeasonHint,
		Results:     outcome.Value,
		GeneratedAt: utils.NowISO(),
		Budget:      q.Budget,
	}
	if err := mergeProviderPayload(ctx, s.repo, itineraryID, "fashion", payload); err != nil {
		return nil, err
	}
	s.log.Info("fashion suggestions ready", zap.String("city", city), zap.Int("attempts", outcome.Attempts))
	return payload, nil
}
