package services

import (
	"fmt"
	"strings"

	"yatra/internal/models/request_models"
	"yatra/pkg/utils"
	"yatra/pkg/validation"
)

const (
	itineraryTokenCap = 20000
	fashionTokenCap   = 8192
	providerTokenCap  = 2048
)

func itinerarySystemInstruction(prefs request_models.TripPreferences, dayCount int, country string) string {
	return "Write terse JSON in English. Keep all strings short. " +
		"summary = 32 words. title = 10 words. description = 32 words. " +
		"Use 24h times like 09:00. Costs are integers. " +
		fmt.Sprintf("Destination is %s, %s only. ", prefs.Destination, country) +
		`Mark source as "places-api" for real POIs, else "ai". ` +
		"Top-level keys: destination, budget, currency, totalEstimatedCost, weatherAdvisory, costBreakdown, days. " +
		"Each activity object MUST include keys time, title, description, location, cost, source. " +
		fmt.Sprintf("Create exactly %d days with 3-4 activities each.", dayCount)
}

func strictItineraryInstruction(prefs request_models.TripPreferences, dayCount int, country, lastReason string) string {
	instruction := itinerarySystemInstruction(prefs, dayCount, country) +
		" Every day MUST contain 3-4 activities and each activity MUST include title, description, location, cost (integer or descriptive string), and source." +
		fmt.Sprintf(` The "days" array MUST have exactly %d entries, each with "summary" and "activities".`, dayCount) +
		" Output a single JSON object only, no markdown."
	if lastReason != "" {
		instruction += " The previous answer was rejected: " + lastReason + "."
	}
	return instruction
}

func itineraryPrompt(prefs request_models.TripPreferences, country, currency string) string {
	themes := strings.Join(prefs.Themes, ", ")
	if themes == "" {
		themes = "General"
	}
	language := prefs.Language
	if language == "" {
		language = "English"
	}
	return fmt.Sprintf("Trip in %s, %s for %d travellers. Dates %s to %s. Budget %d %s. Themes %s. Language %s.",
		prefs.Destination, country, prefs.Travellers, prefs.StartDate, prefs.EndDate,
		prefs.Budget, currency, themes, language)
}

func itineraryRequest(prefs request_models.TripPreferences, dayCount int, country, currency string) func(int, string) utils.GenerationRequest {
	return func(attempt int, lastReason string) utils.GenerationRequest {
		instruction := itinerarySystemInstruction(prefs, dayCount, country)
		if attempt > 0 {
			instruction = strictItineraryInstruction(prefs, dayCount, country, lastReason)
		}
		return utils.GenerationRequest{
			SystemInstruction: instruction,
			Prompt:            itineraryPrompt(prefs, country, currency),
			MaxOutputTokens:   itineraryTokenCap,
		}
	}
}

func fashionPrompt(city, country, seasonHint string, budget int) string {
	hint := ""
	if seasonHint != "" {
		hint = fmt.Sprintf("Season hint: %s. ", seasonHint)
	}
	budgetText := "Stay budget-conscious with mid-range pricing."
	if budget > 0 {
		budgetText = fmt.Sprintf("Ensure each recommendation keeps the primary item cost at or below INR %d.", budget)
	}
	return fmt.Sprintf("You are a fashion concierge for %s, %s. ", city, country) +
		fmt.Sprintf("Produce JSON with four keys (%s). ", strings.Join(validation.RecommendationCategories, ", ")) +
		"Each key must contain exactly four suggestions with fields title, description, weather_note, style_tags, shopping_keywords, price_in_inr. " +
		"Use clearly gendered looks for men versus women, family-friendly picks for kids, and luggage/gear for accessories. " +
		"For kids, focus on age-flexible options suitable for families. " +
		"For accessories, include items like bags, scarves, tech essentials, or travel add-ons. " +
		"Keep descriptions concise, practical for travel, and note any weather considerations. " +
		hint + budgetText
}

func fashionRequest(city, country, seasonHint string, budget int) func(int, string) utils.GenerationRequest {
	base := fashionPrompt(city, country, seasonHint, budget)
	return func(attempt int, lastReason string) utils.GenerationRequest {
		prompt := base
		if attempt > 0 {
			prompt += " Output MUST be valid JSON only. No comments or prose. Ensure each array has exactly four items."
			if lastReason != "" {
				prompt += " The previous answer was rejected: " + lastReason + "."
			}
		}
		return utils.GenerationRequest{Prompt: prompt, MaxOutputTokens: fashionTokenCap}
	}
}

func hotelPrompt(q request_models.HotelSuggestionQuery, country string, nightlyCap int) string {
	budgetClause := "Stay within mid-range, budget-friendly price points suitable for the itinerary."
	if nightlyCap > 0 {
		budgetClause = fmt.Sprintf("Keep nightly rates at or under INR %d whenever possible.", nightlyCap)
	}
	return fmt.Sprintf("List 4-6 real hotels in %s, %s for %d travellers, check-in %s checkout %s. ",
		q.City, country, q.Travellers, q.StartDate, q.EndDate) +
		`Return a JSON object {"hotels": [...]} where each hotel has fields name, neighbourhood, ` +
		"approx_price_in_inr (integer), rating (0-5), tags, url, confidence (0-1). " +
		budgetClause
}

func flightPrompt(q request_models.FlightSuggestionQuery) string {
	budgetClause := "Keep fares budget-friendly."
	if q.Budget != nil && *q.Budget > 0 {
		budgetClause = fmt.Sprintf("Total fare for all %d travellers must be at or below INR %d.", q.Travellers, *q.Budget)
	}
	retText := "one-way"
	if q.Return != "" {
		retText = "return on " + q.Return
	}
	return fmt.Sprintf("List 3-4 real flight options from %s to %s departing %s (%s). ", q.Origin, q.Destination, q.Depart, retText) +
		`Return a JSON object {"flights": [...]}. ` +
		"Include airline, flight_number, depart_time (local), arrival_time (local), duration, stops summary, " +
		fmt.Sprintf("price_in_inr (total for %d travellers), booking_url, notes. ", q.Travellers) +
		budgetClause + " Prefer reputable carriers and sensible layovers under 3 hours."
}

// singlePrompt re-sends the same prompt, appending the last rejection reason on retries.
func singlePrompt(prompt string, tokenCap int) func(int, string) utils.GenerationRequest {
	return func(attempt int, lastReason string) utils.GenerationRequest {
		p := prompt
		if attempt > 0 {
			p += " Output MUST be a single valid JSON object only."
			if lastReason != "" {
				p += " The previous answer was rejected: " + lastReason + "."
			}
		}
		return utils.GenerationRequest{Prompt: p, MaxOutputTokens: tokenCap}
	}
}
