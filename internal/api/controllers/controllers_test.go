package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatra/internal/models/request_models"
	"yatra/internal/models/response_models"
	"yatra/internal/services"
	"yatra/pkg/utils"
)

type stubItineraryService struct {
	got request_models.TripPreferences
	err error
}

func (s *stubItineraryService) GenerateItinerary(_ context.Context, prefs request_models.TripPreferences) (*response_models.Itinerary, error) {
	s.got = prefs
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.Itinerary{ID: "abc", Destination: prefs.Destination + ", India"}, nil
}

func (s *stubItineraryService) GetItinerary(_ context.Context, id string) (*response_models.ItineraryRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.ItineraryRecord{ID: id}, nil
}

type stubFashionService struct {
	got request_models.FashionSuggestionQuery
	err error
}

func (s *stubFashionService) SuggestFashion(_ context.Context, q request_models.FashionSuggestionQuery) (*response_models.FashionPayload, error) {
	s.got = q
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.FashionPayload{City: q.City}, nil
}

type stubProviderService struct {
	hotels request_models.HotelSuggestionQuery
	images request_models.ImageSearchQuery
	err    error
}

func (s *stubProviderService) SuggestHotels(_ context.Context, q request_models.HotelSuggestionQuery) (*response_models.HotelPayload, error) {
	s.hotels = q
	return &response_models.HotelPayload{City: q.City}, s.err
}

func (s *stubProviderService) SuggestFlights(_ context.Context, q request_models.FlightSuggestionQuery) (*response_models.FlightPayload, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.FlightPayload{Origin: q.Origin, Return: q.Return}, nil
}

func (s *stubProviderService) SearchImages(_ context.Context, q request_models.ImageSearchQuery) (*response_models.ImageSearchResponse, error) {
	s.images = q
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.ImageSearchResponse{Query: q.Query, Images: []utils.ImageHit{}}, nil
}

type stubClient struct{}

func (stubClient) GenerateJSON(context.Context, utils.GenerationRequest) (string, error) { return "", nil }
func (stubClient) Provider() string { return "stub" }

func newRouter(it services.ItineraryServiceInterface, fashion services.FashionServiceInterface, providers services.ProviderServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ic := NewItineraryController(it)
	sc := NewSuggestionController(fashion, providers)
	hc := NewHealthController(services.NewRetryController(stubClient{}, nil))

	api := r.Group("/api/v1")
	api.GET("/health", hc.HealthHandler)
	api.POST("/itinerary", ic.GenerateItineraryHandler)
	api.GET("/itinerary/:id", ic.GetItineraryHandler)
	api.GET("/suggest-fashion", sc.SuggestFashionHandler)
	api.GET("/suggest-hotels", sc.SuggestHotelsHandler)
	api.GET("/suggest-flights", sc.SuggestFlightsHandler)
	api.GET("/image-search", sc.ImageSearchHandler)
	return r
}

func do(r *gin.Engine, method, target string, body any) (*httptest.ResponseRecorder, utils.APIResponse) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func validPreferences() map[string]any {
	return map[string]any{
		"preferences": map[string]any{
			"origin":      "Delhi",
			"destination": "Jaipur",
			"startDate":   "2026-12-01",
			"endDate":     "2026-12-03",
			"budget":      40000,
			"themes":      []string{"heritage"},
			"travellers":  2,
		},
	}
}

func TestGenerateItineraryHandler(t *testing.T) {
	svc := &stubItineraryService{}
	r := newRouter(svc, &stubFashionService{}, &stubProviderService{})

	w, resp := do(r, http.MethodPost, "/api/v1/itinerary", validPreferences())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Jaipur", svc.got.Destination)
	assert.Equal(t, []string{"heritage"}, svc.got.Themes)
}

func TestGenerateItineraryHandler_RejectsBadPreferences(t *testing.T) {
	cases := map[string]func(map[string]any){
		"budget too low":  func(p map[string]any) { p["budget"] = 500 },
		"no themes":       func(p map[string]any) { p["themes"] = []string{} },
		"blank theme":     func(p map[string]any) { p["themes"] = []string{""} },
		"too many people": func(p map[string]any) { p["travellers"] = 7 },
		"missing origin":  func(p map[string]any) { delete(p, "origin") },
	}
	for name, edit := range cases {
		t.Run(name, func(t *testing.T) {
			body := validPreferences()
			edit(body["preferences"].(map[string]any))
			r := newRouter(&stubItineraryService{}, &stubFashionService{}, &stubProviderService{})

			w, resp := do(r, http.MethodPost, "/api/v1/itinerary", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "error", resp.Status)
		})
	}
}

func TestGenerateItineraryHandler_MapsServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{&utils.GenerationExhaustedError{Kind: "itinerary", Attempts: 3, LastReason: "days missing"}, http.StatusBadGateway},
		{utils.ErrInvalidTripDates, http.StatusBadRequest},
		{utils.ErrDatabaseError, http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tc := range cases {
		r := newRouter(&stubItineraryService{err: tc.err}, &stubFashionService{}, &stubProviderService{})

		w, resp := do(r, http.MethodPost, "/api/v1/itinerary", validPreferences())

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		assert.Equal(t, tc.code, resp.Code)
	}
}

func TestGetItineraryHandler(t *testing.T) {
	r := newRouter(&stubItineraryService{}, &stubFashionService{}, &stubProviderService{})
	w, _ := do(r, http.MethodGet, "/api/v1/itinerary/123", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	r = newRouter(&stubItineraryService{err: utils.ErrItineraryNotFound}, &stubFashionService{}, &stubProviderService{})
	w, resp := do(r, http.MethodGet, "/api/v1/itinerary/123", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Itinerary not found", resp.Message)
}

func TestSuggestFashionHandler(t *testing.T) {
	fashion := &stubFashionService{}
	r := newRouter(&stubItineraryService{}, fashion, &stubProviderService{})

	w, _ := do(r, http.MethodGet, "/api/v1/suggest-fashion?city=Goa&season_hint=monsoon&budget=3000", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "monsoon", fashion.got.SeasonHint)
	require.NotNil(t, fashion.got.Budget)
	assert.Equal(t, 3000, *fashion.got.Budget)

	w, _ = do(r, http.MethodGet, "/api/v1/suggest-fashion", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = newRouter(&stubItineraryService{}, &stubFashionService{err: &utils.ValidationError{Category: "men", Reason: "no image found"}}, &stubProviderService{})
	w, _ = do(r, http.MethodGet, "/api/v1/suggest-fashion?city=Goa", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestProviderHandlers(t *testing.T) {
	providers := &stubProviderService{}
	r := newRouter(&stubItineraryService{}, &stubFashionService{}, providers)

	w, _ := do(r, http.MethodGet, "/api/v1/suggest-hotels?city=Goa&start_date=2026-11-20&end_date=2026-11-22&budget=9000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9000, providers.hotels.Budget)

	w, _ = do(r, http.MethodGet, "/api/v1/suggest-hotels?city=Goa", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(r, http.MethodGet, "/api/v1/suggest-flights?origin=BOM&destination=GOI&depart=2026-11-20&ret=2026-11-24", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, http.MethodGet, "/api/v1/image-search?query=fort&num=11", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(r, http.MethodGet, "/api/v1/image-search?query=fort&num=4", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, providers.images.Num)

	r = newRouter(&stubItineraryService{}, &stubFashionService{}, &stubProviderService{err: utils.ErrImageLookupDisabled})
	w, _ = do(r, http.MethodGet, "/api/v1/image-search?query=fort", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthHandler(t *testing.T) {
	r := newRouter(&stubItineraryService{}, &stubFashionService{}, &stubProviderService{})

	w, _ := do(r, http.MethodGet, "/api/v1/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","provider":"stub"}`, w.Body.String())
}
