package response_models

import (
	"encoding/json"

	"yatra/internal/models/request_models"
)

// ItineraryRecord is a stored itinerary with its preferences and provider results.
type ItineraryRecord struct {
	ID          string                          `json:"id"`
	Itinerary   Itinerary                       `json:"itinerary"`
	Preferences *request_models.TripPreferences `json:"preferences,omitempty"`
	Providers   map[string]json.RawMessage      `json:"providers"`
	UpdatedAt   string                          `json:"updatedAt"`
}
