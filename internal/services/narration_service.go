package services

import (
	"fmt"
	"strings"

	"yatra/internal/models/request_models"
	"yatra/internal/models/response_models"
)

const (
	narrationMood       = "uplifting"
	narrationMinSeconds = 18
	narrationMaxSeconds = 45
	secondsPerWord      = 2
)

// GenerateDayNarrations builds one short voice-over script per day.
func GenerateDayNarrations(it response_models.Itinerary, prefs request_models.TripPreferences) []response_models.Narration {
	destination := prefs.Destination
	if destination == "" {
		destination = defaultContext
	}
	advisory := strings.TrimSpace(it.WeatherAdvisory)

	narrations := make([]response_models.Narration, 0, len(it.Days))
	for i, day := range it.Days {
		label := day.DateLabel
		if label == "" {
			label = fmt.Sprintf("Day %d", i+1)
		}
		summary := cleanSnippet(day.Summary)
		if summary == "" {
			summary = "tailored experiences await."
		}

		var highlights []string
		for _, a := range day.Activities {
			if t := cleanSnippet(a.Title); t != "" {
				highlights = append(highlights, t)
			}
		}

		bits := []string{fmt.Sprintf("Day %d in %s: %s", i+1, destination, summary)}
		if len(highlights) > 0 {
			first, last := highlights[0], highlights[len(highlights)-1]
			if first != last {
				bits = append(bits, fmt.Sprintf("Start with %s and wrap up at %s.", first, last))
			} else {
				bits = append(bits, fmt.Sprintf("Expect %s as a signature moment.", first))
			}
		}
		if advisory != "" {
			bits = append(bits, "Weather watch: "+advisory)
		}
		script := strings.Join(bits, " ")

		narrations = append(narrations, response_models.Narration{
			Day:           label,
			Script:        script,
			Mood:          narrationMood,
			LengthSeconds: clamp(len(strings.Fields(script))*secondsPerWord, narrationMinSeconds, narrationMaxSeconds),
		})
	}
	return narrations
}
