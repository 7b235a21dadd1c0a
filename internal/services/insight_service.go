package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"yatra/internal/models/request_models"
	"yatra/internal/models/response_models"
	"yatra/pkg/utils"
)

// Scoring constants. These are empirical and kept as-is for compatibility.
const (
	budgetBase           = 82
	budgetCushionWeight  = 25
	budgetOvershootScale = 90
	budgetFloor          = 30
	budgetUnknownScore   = 75
	budgetReinvestShare  = 0.15

	logisticsBase         = 82
	logisticsAvgSpanLimit = 720
	logisticsAvgSpanCost  = 12
	logisticsMaxSpanLimit = 840
	logisticsMaxSpanCost  = 10
	logisticsDensityLimit = 4.2
	logisticsDensityCost  = 8
	logisticsFloor        = 35

	weatherBase     = 90
	weatherSevere   = 55
	weatherRain     = 70
	weatherHeat     = 68
	weatherAdvisory = 78
	weatherFloor    = 30

	impactBase         = 74
	impactGreenBonus   = 4
	impactCarbonCost   = 5
	impactHeavyShare   = 0.35
	impactHeavyCost    = 12
	impactLightShare   = 0.15
	impactLightBonus   = 6
	impactFloor        = 25

	experienceBase   = 68
	experienceWeight = 30
	experienceFloor  = 35
	experienceTarget = 0.5

	statusGreatAt   = 80
	statusCautionAt = 60
	badgeLaunchAt   = 80
	badgeTuneAt     = 65
)

var (
	severeWeatherTerms = []string{"storm", "cyclone", "heavy", "extreme"}
	rainTerms          = []string{"rain", "shower"}
	greenKeywords      = []string{"walk", "walking", "cycle", "public", "metro", "local market"}
	carbonKeywords     = []string{"taxi", "cab", "private", "drive", "suv"}
)

const (
	actionReinvest   = "Reinvest budget buffer into a signature local experience."
	actionGuardrails = "Enable budget guardrails to auto-swap premium slots with value picks."
	actionTrimDay    = "Trim one activity from the busiest day to reduce rush between stops."
	actionIndoors    = "Shift exposed activities indoors on risky days to stay comfortable."
	actionRainGear   = "Pack light rain gear and shift open-air slots earlier in the day."
	actionModeSwap   = "Swap at least one cab ride for a curated walking or metro experience."
	actionThemes     = "Infuse more of the selected themes into late-day slots for balance."
	alertSevere      = "Severe weather flagged. Prepare plan B indoor experiences."
)

// ScoreTrip computes the five-axis insight report. It performs no I/O.
func ScoreTrip(it response_models.Itinerary, prefs request_models.TripPreferences) response_models.InsightReport {
	var alerts, actions []string

	budget := prefs.Budget
	total := it.TotalEstimatedCost
	if total == 0 {
		total = budget
	}
	if total == 0 {
		total = 1
	}

	budgetScore, a, s := scoreBudget(total, budget)
	alerts, actions = append(alerts, a...), append(actions, s...)

	logisticsScore, s := scoreLogistics(it.Days)
	actions = append(actions, s...)

	weatherScore, a, s := scoreWeather(it.WeatherAdvisory)
	alerts, actions = append(alerts, a...), append(actions, s...)

	activities := activitiesBlob(it.Days)
	impactScore, s := scoreImpact(activities, it.CostBreakdown, total)
	actions = append(actions, s...)

	experienceScore, s := scoreExperience(activities, it.Days, prefs.Themes)
	actions = append(actions, s...)

	axes := []response_models.Axis{
		newAxis("budget", "Budget Fit", budgetScore, "Compares projected spend against your stated budget."),
		newAxis("logistics", "Logistics Flow", logisticsScore, "Looks at activity density and travel day stretch."),
		newAxis("weather", "Weather Resilience", weatherScore, "Reflects risk from current advisory notes."),
		newAxis("impact", "Sustainability", impactScore, "Balances low-carbon modes and community-first picks."),
		newAxis("experience", "Experience Fit", experienceScore, "Measures alignment between themes and planned highlights."),
	}

	sum := 0
	for _, axis := range axes {
		sum += axis.Score
	}
	overall := int(math.Round(float64(sum) / float64(len(axes))))

	if alerts == nil {
		alerts = []string{}
	}
	if actions == nil {
		actions = []string{}
	}
	return response_models.InsightReport{
		OverallScore:     overall,
		Badge:            badgeFor(overall),
		Axes:             axes,
		Alerts:           alerts,
		SuggestedActions: actions,
		GeneratedAt:      utils.NowISO(),
	}
}

func scoreBudget(total, budget int) (int, []string, []string) {
	if budget <= 0 {
		return budgetUnknownScore, nil, nil
	}
	if total <= budget {
		cushion := budget - total
		ratio := float64(cushion) / float64(budget)
		score := min(100, int(budgetBase+ratio*budgetCushionWeight))
		var actions []string
		if float64(cushion) > budgetReinvestShare*float64(budget) {
			actions = append(actions, actionReinvest)
		}
		return score, nil, actions
	}

	overshoot := total - budget
	ratio := float64(overshoot) / float64(budget)
	score := max(budgetFloor, int(budgetBase-ratio*budgetOvershootScale))
	alert := fmt.Sprintf("Projected spend exceeds budget by ₹%s.", utils.FormatAmount(overshoot))
	return score, []string{alert}, []string{actionGuardrails}
}

func scoreLogistics(days []response_models.Day) (int, []string) {
	score := float64(logisticsBase)
	var actions []string

	var spans []int
	activityCount := 0
	for _, day := range days {
		activityCount += len(day.Activities)
		first, last, seen := 0, 0, false
		for _, a := range day.Activities {
			m, ok := utils.ParseClockMinutes(a.Time)
			if !ok {
				continue
			}
			if !seen || m < first {
				first = m
			}
			if !seen || m > last {
				last = m
			}
			seen = true
		}
		if seen {
			spans = append(spans, last-first)
		}
	}

	if len(spans) > 0 {
		sum, widest := 0, 0
		for _, span := range spans {
			sum += span
			widest = max(widest, span)
		}
		if float64(sum)/float64(len(spans)) > logisticsAvgSpanLimit {
			score -= logisticsAvgSpanCost
		}
		if widest > logisticsMaxSpanLimit {
			score -= logisticsMaxSpanCost
		}
	}
	if len(days) > 0 && float64(activityCount)/float64(len(days)) > logisticsDensityLimit {
		score -= logisticsDensityCost
		actions = append(actions, actionTrimDay)
	}
	return clamp(int(math.Round(score)), logisticsFloor, 100), actions
}

func scoreWeather(advisory string) (int, []string, []string) {
	text := strings.ToLower(strings.TrimSpace(advisory))
	switch {
	case text == "":
		return weatherBase, nil, nil
	case containsAny(text, severeWeatherTerms):
		return clamp(weatherSevere, weatherFloor, 100), []string{alertSevere}, []string{actionIndoors}
	case containsAny(text, rainTerms):
		return clamp(weatherRain, weatherFloor, 100), nil, []string{actionRainGear}
	case strings.Contains(text, "heat"):
		return clamp(weatherHeat, weatherFloor, 100), nil, nil
	default:
		return clamp(weatherAdvisory, weatherFloor, 100), nil, nil
	}
}

// scoreImpact counts each keyword once when present. Overlapping keywords such
// as "walk" and "walking" both count.
func scoreImpact(activities string, breakdown []response_models.CostItem, total int) (int, []string) {
	score := impactBase
	var actions []string
	for _, kw := range greenKeywords {
		if strings.Contains(activities, kw) {
			score += impactGreenBonus
		}
	}
	for _, kw := range carbonKeywords {
		if strings.Contains(activities, kw) {
			score -= impactCarbonCost
		}
	}

	transport := 0
	for _, item := range breakdown {
		if strings.Contains(strings.ToLower(item.Category), "transport") {
			transport += item.Amount
		}
	}
	if total != 0 {
		share := float64(transport) / float64(total)
		switch {
		case share > impactHeavyShare:
			score -= impactHeavyCost
			actions = append(actions, actionModeSwap)
		case share < impactLightShare:
			score += impactLightBonus
		}
	}
	return clamp(score, impactFloor, 100), actions
}

func scoreExperience(activities string, days []response_models.Day, themes []string) (int, []string) {
	summaries := make([]string, 0, len(days))
	for _, day := range days {
		summaries = append(summaries, cleanSnippet(day.Summary))
	}
	blob := strings.ToLower(activities + " " + strings.Join(summaries, " "))

	coverage := 1.0
	if len(themes) > 0 {
		matches := 0
		for _, theme := range themes {
			kw := strings.ToLower(theme)
			if kw != "" && strings.Contains(blob, kw) {
				matches++
			}
		}
		coverage = float64(matches) / float64(len(themes))
	}

	score := clamp(int(experienceBase+coverage*experienceWeight), experienceFloor, 100)
	var actions []string
	if coverage < experienceTarget && len(themes) > 0 {
		actions = append(actions, actionThemes)
	}
	return score, actions
}

func activitiesBlob(days []response_models.Day) string {
	parts := make([]string, 0)
	for _, day := range days {
		for _, a := range day.Activities {
			parts = append(parts, cleanSnippet(a.Title)+" "+cleanSnippet(a.Description))
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func newAxis(id, label string, score int, explanation string) response_models.Axis {
	return response_models.Axis{
		ID:          id,
		Label:       label,
		Score:       score,
		Status:      statusFor(score),
		Explanation: explanation,
	}
}

func statusFor(score int) string {
	switch {
	case score >= statusGreatAt:
		return "great"
	case score >= statusCautionAt:
		return "caution"
	default:
		return "risk"
	}
}

func badgeFor(overall int) string {
	switch {
	case overall >= badgeLaunchAt:
		return "Launch-ready"
	case overall >= badgeTuneAt:
		return "Tune & shine"
	default:
		return "Needs attention"
	}
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	dashReplacer  = strings.NewReplacer("–", "-", "—", "-")
)

func cleanSnippet(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(dashReplacer.Replace(text), " "))
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
