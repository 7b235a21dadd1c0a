package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yatra/internal/models/request_models"
	"yatra/internal/models/response_models"
	"yatra/internal/repositories"
	"yatra/pkg/utils"
	"yatra/pkg/validation"
)

const (
	defaultHotelTravellers  = 2
	defaultFlightTravellers = 1
	defaultImageResults     = 6
	hotelFallbackCount      = 4
	flightFallbackCount     = 3
)

type ProviderServiceInterface interface {
	SuggestHotels(ctx context.Context, q request_models.HotelSuggestionQuery) (*response_models.HotelPayload, error)
	SuggestFlights(ctx context.Context, q request_models.FlightSuggestionQuery) (*response_models.FlightPayload, error)
	SearchImages(ctx context.Context, q request_models.ImageSearchQuery) (*response_models.ImageSearchResponse, error)
}

type ProviderService struct {
	repo     repositories.ItineraryRepository
	retry    *RetryController
	search   utils.ImageSearchInterface
	settings GenerationSettings
	log      *zap.Logger
}

func NewProviderService(
	repo repositories.ItineraryRepository,
	retry *RetryController,
	search utils.ImageSearchInterface,
	settings GenerationSettings,
	log *zap.Logger,
) ProviderServiceInterface {
	return &ProviderService{
		repo:     repo,
		retry:    retry,
		search:   search,
		settings: settings,
		log:      log.Named("providers"),
	}
}

func (s *ProviderService) SuggestHotels(ctx context.Context, q request_models.HotelSuggestionQuery) (*response_models.HotelPayload, error) {
	itineraryID, err := parseOptionalID(q.ItineraryID)
	if err != nil {
		return nil, err
	}
	if q.Travellers <= 0 {
		q.Travellers = defaultHotelTravellers
	}
	nightlyCap := 0
	if q.Budget > 0 {
		nightlyCap = q.Budget / utils.NightsBetween(q.StartDate, q.EndDate)
	}

	outcome, err := Generate(ctx, s.retry, GenerationPlan[[]response_models.HotelSuggestion]{
		Kind:        validation.KindHotels,
		MaxAttempts: s.settings.MaxAttempts,
		Request:     singlePrompt(hotelPrompt(q, s.settings.Country, nightlyCap), providerTokenCap),
		Validate:    func(doc map[string]any) error { return validation.ValidateHotels(doc) },
		Accept: func(_ context.Context, doc map[string]any) ([]response_models.HotelSuggestion, error) {
			return decodeHotels(doc), nil
		},
	})
	if err != nil {
		return nil, err
	}

	lookup := newImageLookup(s.search, s.log)
	filtered := make([]response_models.HotelSuggestion, 0, len(outcome.Value))
	for _, hotel := range outcome.Value {
		if hotel.Name == "" {
			continue
		}
		if nightlyCap > 0 && hotel.ApproxPriceInINR != nil && *hotel.ApproxPriceInINR > nightlyCap {
			continue
		}
		if hit, ok := lookup.hero(ctx, fmt.Sprintf("%s %s hotel", hotel.Name, q.City), hotelImageLimit); ok {
			hotel.ImageURL = hit.Link
			hotel.ImageThumbnail = hit.Thumbnail
			hotel.ImageContext = hit.Context
		}
		filtered = append(filtered, hotel)
	}
	if len(filtered) == 0 && len(outcome.Value) > 0 {
		filtered = cheapestHotels(outcome.Value, hotelFallbackCount)
	}

	payload := &response_models.HotelPayload{
		City:        q.City,
		Start:       q.StartDate,
		End:         q.EndDate,
		Travellers:  q.Travellers,
		Budget:      q.Budget,
		Results:     filtered,
		GeneratedAt: utils.NowISO(),
	}
	if err := mergeProviderPayload(ctx, s.repo, itineraryID, "hotels", payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *ProviderService) SuggestFlights(ctx context.Context, q request_models.FlightSuggestionQuery) (*response_models.FlightPayload, error) {
	itineraryID, err := parseOptionalID(q.ItineraryID)
	if err != nil {
		return nil, err
	}
	if q.Travellers <= 0 {
		q.Travellers = defaultFlightTravellers
	}
	budget := 0
	if q.Budget != nil {
		budget = *q.Budget
	}

	outcome, err := Generate(ctx, s.retry, GenerationPlan[[]response_models.FlightOption]{
		Kind:        validation.KindFlights,
		MaxAttempts: s.settings.MaxAttempts,
		Request:     singlePrompt(flightPrompt(q), providerTokenCap),
		Validate:    func(doc map[string]any) error { return validation.ValidateFlights(doc) },
		Accept: func(_ context.Context, doc map[string]any) ([]response_models.FlightOption, error) {
			return decodeFlights(doc), nil
		},
	})
	if err != nil {
		return nil, err
	}

	filtered := make([]response_models.FlightOption, 0, len(outcome.Value))
	for _, option := range outcome.Value {
		if budget > 0 && option.PriceInINR != nil && *option.PriceInINR > budget {
			continue
		}
		filtered = append(filtered, option)
	}
	if len(filtered) == 0 && len(outcome.Value) > 0 {
		filtered = outcome.Value[:min(flightFallbackCount, len(outcome.Value))]
	}

	payload := &response_models.FlightPayload{
		Origin:      q.Origin,
		Destination: q.Destination,
		Depart:      q.Depart,
		Return:      q.Return,
		Travellers:  q.Travellers,
		Budget:      q.Budget,
		Results:     filtered,
		GeneratedAt: utils.NowISO(),
	}
	if err := mergeProviderPayload(ctx, s.repo, itineraryID, "flights", payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *ProviderService) SearchImages(ctx context.Context, q request_models.ImageSearchQuery) (*response_models.ImageSearchResponse, error) {
	query := strings.TrimSpace(q.Query)
	if query == "" {
		return nil, utils.ErrInvalidInput
	}
	num := q.Num
	if num == 0 {
		num = defaultImageResults
	}
	hits, err := s.search.SearchImages(ctx, query, num)
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []utils.ImageHit{}
	}
	return &response_models.ImageSearchResponse{Query: query, Images: hits}, nil
}

func decodeHotels(doc map[string]any) []response_models.HotelSuggestion {
	list, _ := doc["hotels"].([]any)
	hotels := make([]response_models.HotelSuggestion, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		price, ok := optionalPrice(m["approx_price_in_inr"])
		if !ok {
			continue
		}
		hotel := response_models.HotelSuggestion{
			Name:             stringOr(m["name"], ""),
			Neighbourhood:    stringOr(m["neighbourhood"], ""),
			URL:              stringOr(m["url"], ""),
			Tags:             styleTags(m["tags"]),
			ApproxPriceInINR: price,
		}
		if rating, ok := number(m["rating"]); ok {
			hotel.Rating = &rating
		}
		if confidence, ok := number(m["confidence"]); ok {
			hotel.Confidence = confidence
		}
		hotels = append(hotels, hotel)
	}
	return hotels
}

func decodeFlights(doc map[string]any) []response_models.FlightOption {
	list, _ := doc["flights"].([]any)
	flights := make([]response_models.FlightOption, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		price, ok := optionalPrice(m["price_in_inr"])
		if !ok {
			continue
		}
		flights = append(flights, response_models.FlightOption{
			Airline:      stringOr(m["airline"], ""),
			FlightNumber: stringOr(m["flight_number"], ""),
			DepartTime:   stringOr(m["depart_time"], ""),
			ArrivalTime:  stringOr(m["arrival_time"], ""),
			Duration:     stringOr(m["duration"], ""),
			Stops:        stringOr(m["stops"], ""),
			PriceInINR:   price,
			BookingURL:   stringOr(m["booking_url"], ""),
			Notes:        stringOr(m["notes"], ""),
		})
	}
	return flights
}

// optionalPrice is nil when the model gave no readable price. The second
// result is false when a figure was given but cannot be a real price.
func optionalPrice(v any) (*int, bool) {
	raw, ok := readPrice(v)
	if !ok {
		return nil, true
	}
	price, ok := amount(raw)
	if !ok {
		return nil, false
	}
	return &price, true
}

// cheapestHotels orders by price with unpriced entries last.
func cheapestHotels(hotels []response_models.HotelSuggestion, n int) []response_models.HotelSuggestion {
	sorted := append([]response_models.HotelSuggestion(nil), hotels...)
	priceOf := func(h response_models.HotelSuggestion) int {
		if h.ApproxPriceInINR == nil {
			return math.MaxInt
		}
		return *h.ApproxPriceInINR
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return priceOf(sorted[i]) < priceOf(sorted[j])
	})
	return sorted[:min(n, len(sorted))]
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	return &id, nil
}

// mergeProviderPayload stores payload under providers[key] when an itinerary is referenced.
func mergeProviderPayload(ctx context.Context, repo repositories.ItineraryRepository, id *uuid.UUID, key string, payload any) error {
	if id == nil {
		return nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", key, err)
	}
	if err := repo.MergeProvider(ctx, *id, key, encoded); err != nil {
		if errors.Is(err, utils.ErrItineraryNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}
