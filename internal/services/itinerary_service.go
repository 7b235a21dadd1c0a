package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yatra/internal/models/db_models"
	"yatra/internal/models/request_models"
	"yatra/internal/models/response_models"
	"yatra/internal/repositories"
	"yatra/pkg/metrics"
	"yatra/pkg/utils"
	"yatra/pkg/validation"
)

// GenerationSettings are the request-independent knobs shared by generating services.
type GenerationSettings struct {
	Country     string
	Currency    string
	MaxAttempts int
}

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences) (*response_models.Itinerary, error)
	GetItinerary(ctx context.Context, id string) (*response_models.ItineraryRecord, error)
}

type ItineraryService struct {
	repo     repositories.ItineraryRepository
	retry    *RetryController
	search   utils.ImageSearchInterface
	settings GenerationSettings
	log      *zap.Logger
}

func NewItineraryService(
	repo repositories.ItineraryRepository,
	retry *RetryController,
	search utils.ImageSearchInterface,
	settings GenerationSettings,
	log *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		repo:     repo,
		retry:    retry,
		search:   search,
		settings: settings,
		log:      log.Named("itinerary"),
	}
}

func (s *ItineraryService) GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences) (*response_models.Itinerary, error) {
	prefs.ApplyDefaults()
	dayCount, err := utils.DaysBetweenInclusive(prefs.StartDate, prefs.EndDate)
	if err != nil {
		return nil, err
	}

	outcome, err := Generate(ctx, s.retry, GenerationPlan[map[string]any]{
		Kind:        validation.KindItinerary,
		MaxAttempts: s.settings.MaxAttempts,
		Request:     itineraryRequest(prefs, dayCount, s.settings.Country, s.settings.Currency),
		Validate: func(doc map[string]any) error {
			return validation.ValidateItinerary(doc, dayCount)
		},
	})
	if err != nil {
		return nil, err
	}

	doc := outcome.Value
	doc["destination"] = fmt.Sprintf("%s, %s", prefs.Destination, s.settings.Country)
	doc["budget"] = prefs.Budget
	doc["currency"] = s.settings.Currency
	doc["createdAt"] = utils.NowISO()

	itinerary := NormalizeItinerary(doc, prefs)
	if prefs.LiveData() {
		AttachActivityImages(ctx, &itinerary, s.search, s.log)
	}

	itinerary.Themes = prefs.Themes
	bestEffort(s.log, "narrations", func() {
		itinerary.Narrations = GenerateDayNarrations(itinerary, prefs)
	})
	bestEffort(s.log, "insights", func() {
		report := ScoreTrip(itinerary, prefs)
		itinerary.Insights = &report
		metrics.TripInsightOverall.Observe(float64(report.OverallScore))
	})
	itinerary.Meta = &response_models.Meta{Source: s.retry.Provider(), Mode: "structured"}

	// Abandoned requests leave nothing behind.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, &itinerary, prefs); err != nil {
		return nil, err
	}

	s.log.Info("itinerary generated",
		zap.String("id", itinerary.ID),
		zap.String("destination", prefs.Destination),
		zap.Int("days", len(itinerary.Days)),
		zap.Int("attempts", outcome.Attempts))
	return &itinerary, nil
}

func (s *ItineraryService) persist(ctx context.Context, it *response_models.Itinerary, prefs request_models.TripPreferences) error {
	id := uuid.New()
	it.ID = id.String()

	document, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("encode itinerary: %w", err)
	}
	preferences, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	record := &db_models.Itinerary{
		BaseModel:   db_models.BaseModel{ID: id},
		Destination: prefs.Destination,
		Document:    string(document),
		Preferences: string(preferences),
		Providers:   "{}",
	}
	if err := s.repo.CreateItinerary(ctx, record); err != nil {
		s.log.Error("failed to persist itinerary", zap.String("id", it.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (s *ItineraryService) GetItinerary(ctx context.Context, id string) (*response_models.ItineraryRecord, error) {
	itineraryID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	record, err := s.repo.GetItineraryByID(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if record == nil {
		return nil, utils.ErrItineraryNotFound
	}

	out := &response_models.ItineraryRecord{
		ID:        record.ID.String(),
		Providers: map[string]json.RawMessage{},
		UpdatedAt: utils.FormatRFC3339IST(utils.FromUnixSecondsIST(record.UpdatedAt)),
	}
	if err := json.Unmarshal([]byte(record.Document), &out.Itinerary); err != nil {
		return nil, fmt.Errorf("decode itinerary %s: %w", id, err)
	}
	if record.Preferences != "" && record.Preferences != "null" {
		var prefs request_models.TripPreferences
		if err := json.Unmarshal([]byte(record.Preferences), &prefs); err == nil {
			out.Preferences = &prefs
		}
	}
	if record.Providers != "" {
		if err := json.Unmarshal([]byte(record.Providers), &out.Providers); err != nil {
			return nil, fmt.Errorf("decode providers %s: %w", id, err)
		}
	}
	return out, nil
}

// bestEffort runs an additive enrichment step. A panic is logged and the step's
// output is simply left unset.
func bestEffort(log *zap.Logger, step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("enrichment step failed", zap.String("step", step), zap.Any("panic", r))
		}
	}()
	fn()
}
