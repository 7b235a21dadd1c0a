package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"yatra/internal/models/request_models"
	"yatra/internal/models/response_models"
	"yatra/pkg/utils"
)

const (
	firstSlotHour  = 9
	slotStepHours  = 2
	earliestSlot   = 6
	latestSlot     = 22
	defaultSource  = "ai"
	defaultFiller  = "Curated moment designed for this trip."
	defaultMotifs  = "local highlights"
	defaultContext = "your destination"
)

// NormalizeItinerary turns a shape-valid candidate into a canonical Itinerary.
// It never fails: every missing or malformed field gets a deterministic default.
func NormalizeItinerary(raw map[string]any, prefs request_models.TripPreferences) response_models.Itinerary {
	it := response_models.Itinerary{
		Destination: stringOr(raw["destination"], prefs.Destination),
		Currency:    stringOr(raw["currency"], ""),
		CreatedAt:   stringOr(raw["createdAt"], ""),
		ID:          stringOr(raw["id"], ""),
	}
	if n, ok := amount(raw["budget"]); ok {
		it.Budget = n
	}
	if advisory, ok := nonBlank(raw["weatherAdvisory"]); ok {
		it.WeatherAdvisory = advisory
	}

	it.CostBreakdown = normalizeCostBreakdown(raw["costBreakdown"])
	if total, ok := amount(raw["totalEstimatedCost"]); ok {
		it.TotalEstimatedCost = total
	} else {
		it.TotalEstimatedCost = sumCostBreakdown(it.CostBreakdown)
	}

	var start *time.Time
	if t, err := utils.ParseISODate(prefs.StartDate); err == nil {
		start = &t
	}
	rawDays, _ := raw["days"].([]any)
	it.Days = make([]response_models.Day, 0, len(rawDays))
	for i, d := range rawDays {
		day, _ := d.(map[string]any)
		it.Days = append(it.Days, normalizeDay(day, i, start, prefs))
	}
	return it
}

func normalizeDay(day map[string]any, index int, start *time.Time, prefs request_models.TripPreferences) response_models.Day {
	out := response_models.Day{
		DateLabel: stringOr(day["dateLabel"], fmt.Sprintf("Day %d", index+1)),
		Summary:   stringOr(day["summary"], defaultSummary(prefs)),
	}

	if date, ok := nonBlank(day["date"]); ok {
		out.Date = date
	} else if start != nil {
		out.Date = utils.FormatISODate(start.AddDate(0, 0, index))
	}

	rawActivities, _ := day["activities"].([]any)
	out.Activities = make([]response_models.Activity, 0, len(rawActivities))
	for j, a := range rawActivities {
		activity, _ := a.(map[string]any)
		out.Activities = append(out.Activities, normalizeActivity(activity, j, prefs))
	}

	out.Accommodation = normalizeAccommodation(day["accommodation"])
	return out
}

func defaultSummary(prefs request_models.TripPreferences) string {
	motifs := strings.Join(prefs.Themes, ", ")
	if motifs == "" {
		motifs = defaultMotifs
	}
	return fmt.Sprintf("Tailored highlights across %s focusing on %s.", prefs.Destination, motifs)
}

func normalizeActivity(a map[string]any, index int, prefs request_models.TripPreferences) response_models.Activity {
	location := prefs.Destination
	if location == "" {
		location = defaultContext
	}
	return response_models.Activity{
		Time:        normalizeTime(a["time"], index),
		Title:       stringOr(a["title"], fmt.Sprintf("Experience %d", index+1)),
		Description: stringOr(a["description"], defaultFiller),
		Location:    stringOr(a["location"], location),
		Cost:        normalizeCost(a["cost"]),
		Source:      stringOr(a["source"], defaultSource),
		Images:      normalizeImages(a["images"]),
	}
}

// SlotTime is the synthesized start time for the index-th activity of a day.
func SlotTime(index int) string {
	hour := firstSlotHour + slotStepHours*index
	if hour < earliestSlot {
		hour = earliestSlot
	}
	if hour > latestSlot {
		hour = latestSlot
	}
	return fmt.Sprintf("%02d:00", hour)
}

var clockLayouts = []string{"15:04:05", "3:04 PM", "3:04PM", "3 PM", "3PM"}

// normalizeTime repairs model-supplied times into HH:MM. Values that cannot be
// read as a clock time fall back to the synthesized slot.
func normalizeTime(v any, index int) string {
	s, ok := nonBlank(v)
	if !ok {
		return SlotTime(index)
	}
	if minutes, ok := utils.ParseClockMinutes(s); ok {
		return utils.FormatClock(minutes)
	}
	upper := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, upper); err == nil {
			return utils.FormatClock(t.Hour()*60 + t.Minute())
		}
	}
	return SlotTime(index)
}

func normalizeCost(v any) response_models.Cost {
	if n, ok := amount(v); ok {
		return response_models.AmountCost(n)
	}
	if s, ok := v.(string); ok {
		cleaned := strings.TrimSpace(s)
		if cleaned == "" {
			return response_models.LabelCost(response_models.CostIncluded)
		}
		if isDigits(cleaned) {
			if n, err := strconv.Atoi(cleaned); err == nil && n <= maxAmount {
				return response_models.AmountCost(n)
			}
		}
		return response_models.LabelCost(cleaned)
	}
	return response_models.LabelCost(response_models.CostIncluded)
}

func normalizeImages(v any) []response_models.ImageRef {
	images := []response_models.ImageRef{}
	list, ok := v.([]any)
	if !ok {
		return images
	}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		link, ok := nonBlank(m["image_url"])
		if !ok {
			continue
		}
		images = append(images, response_models.ImageRef{
			ImageURL:     link,
			ThumbnailURL: stringOr(m["thumbnail_url"], ""),
			ContextURL:   stringOr(m["context_url"], ""),
			Title:        stringOr(m["title"], ""),
		})
	}
	return images
}

func normalizeCostBreakdown(v any) []response_models.CostItem {
	items := []response_models.CostItem{}
	list, ok := v.([]any)
	if !ok {
		return items
	}
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item := response_models.CostItem{
			Category: stringOr(m["category"], ""),
			Notes:    stringOr(m["notes"], ""),
		}
		if n, ok := amount(m["amount"]); ok {
			item.Amount = n
		}
		items = append(items, item)
	}
	return items
}

func sumCostBreakdown(items []response_models.CostItem) int {
	total := 0
	for _, item := range items {
		total += item.Amount
	}
	return total
}

func normalizeAccommodation(v any) *response_models.Accommodation {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	name, ok := nonBlank(m["name"])
	if !ok {
		return nil
	}
	acc := &response_models.Accommodation{Name: name, Notes: stringOr(m["notes"], "")}
	if n, ok := amount(m["cost"]); ok {
		acc.Cost = &n
	}
	return acc
}

// maxAmount bounds every rupee figure read from model output.
const maxAmount = math.MaxInt32

// amount reads a money figure. Values that are negative or too large to be a
// real price are treated as missing.
func amount(v any) (int, bool) {
	n, ok := number(v)
	if !ok || math.IsNaN(n) || n < 0 || n > maxAmount {
		return 0, false
	}
	return int(n), true
}

// number accepts JSON numbers in any of the forms a decoder may produce.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func nonBlank(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func stringOr(v any, fallback string) string {
	if s, ok := nonBlank(v); ok {
		return s
	}
	return fallback
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
