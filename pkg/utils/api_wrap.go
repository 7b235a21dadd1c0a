package utils

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

// HandleServiceError maps service errors to the response envelope.
func HandleServiceError(c *gin.Context, err error) {
	traceID := traceIDOf(c)
	log := zap.L().With(zap.String("trace_id", traceID))

	var (
		exhausted  *GenerationExhaustedError
		validation *ValidationError
	)

	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidTripDates):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrItineraryNotFound):
		RespondError(c, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, ErrImageLookupDisabled):
		RespondError(c, http.StatusServiceUnavailable, "Image search is not configured")
	case errors.As(err, &exhausted):
		log.Error("generation exhausted",
			zap.String("kind", exhausted.Kind),
			zap.Int("attempts", exhausted.Attempts),
			zap.Error(err))
		RespondError(c, http.StatusBadGateway, exhausted.Error())
	case errors.As(err, &validation):
		// the retry loop wraps these in GenerationExhaustedError; a bare one
		// only arrives from a service that validates without retrying
		log.Warn("recommendation rejected", zap.Error(err))
		RespondError(c, http.StatusBadGateway, validation.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		log.Warn("request abandoned", zap.Error(err))
		RespondError(c, http.StatusGatewayTimeout, "Request timed out")
	case errors.Is(err, ErrDatabaseError):
		log.Error("database error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Error("unknown error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
