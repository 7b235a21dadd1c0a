package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/services"
)

type HealthController struct {
	retry *services.RetryController
}

func NewHealthController(retry *services.RetryController) *HealthController {
	return &HealthController{retry: retry}
}

// GET /api/v1/health
func (h *HealthController) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": h.retry.Provider(),
	})
}
