package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatra/internal/models/request_models"
	"yatra/internal/models/response_models"
)

func axisByID(t *testing.T, report response_models.InsightReport, id string) response_models.Axis {
	t.Helper()
	for _, axis := range report.Axes {
		if axis.ID == id {
			return axis
		}
	}
	t.Fatalf("axis %s not found", id)
	return response_models.Axis{}
}

func day(times ...string) response_models.Day {
	d := response_models.Day{Summary: "Relaxed exploring"}
	for _, tm := range times {
		d.Activities = append(d.Activities, response_models.Activity{Time: tm, Title: "Stop", Description: "Look around"})
	}
	return d
}

func TestScoreTrip_BudgetCushion(t *testing.T) {
	it := response_models.Itinerary{TotalEstimatedCost: 40000, Days: []response_models.Day{day("09:00", "12:00", "16:00")}}
	prefs := request_models.TripPreferences{Budget: 50000}

	report := ScoreTrip(it, prefs)

	budget := axisByID(t, report, "budget")
	assert.Equal(t, 87, budget.Score)
	assert.Equal(t, "great", budget.Status)
	assert.Contains(t, report.SuggestedActions, actionReinvest)
	assert.Empty(t, report.Alerts)
}

func TestScoreTrip_BudgetOvershoot(t *testing.T) {
	it := response_models.Itinerary{TotalEstimatedCost: 60000}
	prefs := request_models.TripPreferences{Budget: 50000}

	report := ScoreTrip(it, prefs)

	// 82 - 0.2*90 = 64
	assert.Equal(t, 64, axisByID(t, report, "budget").Score)
	assert.Contains(t, report.Alerts, "Projected spend exceeds budget by ₹10,000.")
	assert.Contains(t, report.SuggestedActions, actionGuardrails)

	far := ScoreTrip(response_models.Itinerary{TotalEstimatedCost: 500000}, prefs)
	assert.Equal(t, budgetFloor, axisByID(t, far, "budget").Score)
}

func TestScoreTrip_ZeroTotalFallsBackToBudget(t *testing.T) {
	prefs := request_models.TripPreferences{Budget: 50000}

	// the breakdown is not consulted once the total is settled
	report := ScoreTrip(response_models.Itinerary{
		CostBreakdown: []response_models.CostItem{{Category: "Stay", Amount: 60000}},
	}, prefs)
	assert.Equal(t, 82, axisByID(t, report, "budget").Score)
	for _, alert := range report.Alerts {
		assert.NotContains(t, alert, "exceeds budget")
	}

	empty := ScoreTrip(response_models.Itinerary{}, request_models.TripPreferences{Budget: 10000})
	assert.Equal(t, 82, axisByID(t, empty, "budget").Score)
}

func TestScoreTrip_WeatherPriority(t *testing.T) {
	cases := []struct {
		advisory   string
		score      int
		alert      bool
		wantAction string
	}{
		{"Heavy rain expected Thursday", 55, true, actionIndoors},
		{"Light showers in the evening", 70, false, actionRainGear},
		{"Heatwave warning", 68, false, ""},
		{"Pleasant and breezy", 78, false, ""},
		{"   ", 90, false, ""},
	}
	for _, tc := range cases {
		report := ScoreTrip(response_models.Itinerary{WeatherAdvisory: tc.advisory}, request_models.TripPreferences{})
		assert.Equal(t, tc.score, axisByID(t, report, "weather").Score, tc.advisory)
		if tc.alert {
			assert.Contains(t, report.Alerts, alertSevere)
		} else {
			assert.NotContains(t, report.Alerts, alertSevere)
		}
		if tc.wantAction != "" {
			assert.Contains(t, report.SuggestedActions, tc.wantAction)
		}
		if tc.score == 55 {
			assert.NotContains(t, report.SuggestedActions, actionRainGear)
		}
	}
}

func TestScoreTrip_LogisticsPenalties(t *testing.T) {
	long := response_models.Itinerary{Days: []response_models.Day{
		day("06:00", "09:00", "13:00", "17:00", "21:30"),
		day("06:00", "10:00", "14:00", "18:00", "21:00"),
	}}

	report := ScoreTrip(long, request_models.TripPreferences{})

	// avg span 915 > 720, widest 930 > 840, 5 activities per day > 4.2
	assert.Equal(t, 82-12-10-8, axisByID(t, report, "logistics").Score)
	assert.Contains(t, report.SuggestedActions, actionTrimDay)

	easy := ScoreTrip(response_models.Itinerary{Days: []response_models.Day{day("09:00", "13:00")}}, request_models.TripPreferences{})
	assert.Equal(t, 82, axisByID(t, easy, "logistics").Score)
}

func TestScoreTrip_Sustainability(t *testing.T) {
	it := response_models.Itinerary{
		TotalEstimatedCost: 10000,
		CostBreakdown:      []response_models.CostItem{{Category: "Local transport", Amount: 4000}},
		Days: []response_models.Day{{Activities: []response_models.Activity{
			{Title: "Walking tour", Description: "Guided walk through the old quarter"},
			{Title: "Sunset drive", Description: "Private cab to the cliffs"},
		}}},
	}

	report := ScoreTrip(it, request_models.TripPreferences{})

	// +4 walk +4 walking -5 private -5 drive -5 cab -12 heavy transport share
	assert.Equal(t, 74+8-15-12, axisByID(t, report, "impact").Score)
	assert.Contains(t, report.SuggestedActions, actionModeSwap)

	light := ScoreTrip(response_models.Itinerary{TotalEstimatedCost: 10000}, request_models.TripPreferences{})
	assert.Equal(t, 80, axisByID(t, light, "impact").Score)
}

func TestScoreTrip_ExperienceCoverage(t *testing.T) {
	it := response_models.Itinerary{Days: []response_models.Day{{
		Summary:    "Street FOOD crawl",
		Activities: []response_models.Activity{{Title: "Spice market", Description: "Taste local snacks"}},
	}}}

	half := ScoreTrip(it, request_models.TripPreferences{Themes: []string{"Food", "Nightlife"}})
	assert.Equal(t, 83, axisByID(t, half, "experience").Score)
	assert.NotContains(t, half.SuggestedActions, actionThemes)

	none := ScoreTrip(it, request_models.TripPreferences{Themes: []string{"Adventure", "Nightlife", "Art"}})
	assert.Equal(t, 68, axisByID(t, none, "experience").Score)
	assert.Contains(t, none.SuggestedActions, actionThemes)

	noThemes := ScoreTrip(it, request_models.TripPreferences{})
	assert.Equal(t, 98, axisByID(t, noThemes, "experience").Score)
}

func TestScoreTrip_OverallIsRoundedMean(t *testing.T) {
	it := response_models.Itinerary{
		TotalEstimatedCost: 61000,
		WeatherAdvisory:    "Cyclone watch",
		Days:               []response_models.Day{day("07:00", "11:00", "22:00")},
	}
	report := ScoreTrip(it, request_models.TripPreferences{Budget: 50000, Themes: []string{"wildlife"}})

	require.Len(t, report.Axes, 5)
	sum := 0
	for _, axis := range report.Axes {
		assert.GreaterOrEqual(t, axis.Score, 0)
		assert.LessOrEqual(t, axis.Score, 100)
		sum += axis.Score
	}
	assert.Equal(t, int(math.Round(float64(sum)/5)), report.OverallScore)
	assert.Equal(t, badgeFor(report.OverallScore), report.Badge)
	assert.NotEmpty(t, report.GeneratedAt)
}

func TestStatusAndBadgeThresholds(t *testing.T) {
	assert.Equal(t, "great", statusFor(80))
	assert.Equal(t, "caution", statusFor(79))
	assert.Equal(t, "caution", statusFor(60))
	assert.Equal(t, "risk", statusFor(59))

	assert.Equal(t, "Launch-ready", badgeFor(80))
	assert.Equal(t, "Tune & shine", badgeFor(65))
	assert.Equal(t, "Needs attention", badgeFor(64))
}
