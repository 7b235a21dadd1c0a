package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/models/request_models"
	"yatra/internal/services"
	"yatra/pkg/utils"
)

type SuggestionController struct {
	fashionService  services.FashionServiceInterface
	providerService services.ProviderServiceInterface
}

func NewSuggestionController(
	fashionService services.FashionServiceInterface,
	providerService services.ProviderServiceInterface,
) *SuggestionController {
	return &SuggestionController{
		fashionService:  fashionService,
		providerService: providerService,
	}
}

// GET /api/v1/suggest-fashion
func (s *SuggestionController) SuggestFashionHandler(c *gin.Context) {
	var q request_models.FashionSuggestionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	payload, err := s.fashionService.SuggestFashion(c.Request.Context(), q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, payload, "Fashion suggestions generated")
}

// GET /api/v1/suggest-hotels
func (s *SuggestionController) SuggestHotelsHandler(c *gin.Context) {
	var q request_models.HotelSuggestionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	payload, err := s.providerService.SuggestHotels(c.Request.Context(), q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, payload, "Hotel suggestions generated")
}

// GET /api/v1/suggest-flights
func (s *SuggestionController) SuggestFlightsHandler(c *gin.Context) {
	var q request_models.FlightSuggestionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	payload, err := s.providerService.SuggestFlights(c.Request.Context(), q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, payload, "Flight suggestions generated")
}

// GET /api/v1/image-search
func (s *SuggestionController) ImageSearchHandler(c *gin.Context) {
	var q request_models.ImageSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	resp, err := s.providerService.SearchImages(c.Request.Context(), q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}
