package validation

import "sync"

var (
	str       = []string{"string"}
	number    = []string{"number"}
	array     = []string{"array"}
	object    = []string{"object"}
	numberish = []string{"number", "string"}
)

// ItineraryRule enforces top-level shape only. Activity fields are left to the normalizer.
// expectedDays > 0 pins the day count.
func ItineraryRule(expectedDays int) ShapeRule {
	days := FieldRule{
		Key:      "days",
		Types:    array,
		Required: true,
		MinItems: 1,
		Items: &ShapeRule{Fields: []FieldRule{
			{Key: "summary", Required: true},
			{Key: "activities", Types: array, Required: true},
		}},
	}
	if expectedDays > 0 {
		days.MinItems = expectedDays
		days.MaxItems = expectedDays
	}

	return ShapeRule{Fields: []FieldRule{
		{Key: "destination", Types: str, Required: true},
		{Key: "budget", Types: number, Required: true},
		{Key: "currency", Types: str, Required: true},
		days,
		{Key: "costBreakdown", Types: array},
	}}
}

var recommendationItem = ShapeRule{Fields: []FieldRule{
	{Key: "title", Types: str, Required: true, NonBlank: true},
	{Key: "description", Types: str, Required: true, NonBlank: true},
	{Key: "style_tags", Types: array, Required: true},
	{Key: "shopping_keywords", Types: str, Required: true, NonBlank: true},
	{Key: "price_in_inr", Types: numberish, Required: true},
	{Key: "weather_note", Types: str, Required: true, NonBlank: true},
}}

// RecommendationRule is the four-by-four bucketed outfit set.
func RecommendationRule() ShapeRule {
	fields := make([]FieldRule, 0, len(RecommendationCategories))
	for _, category := range RecommendationCategories {
		fields = append(fields, FieldRule{
			Key:      category,
			Types:    array,
			Required: true,
			MinItems: RecommendationItemsPerCategory,
			MaxItems: RecommendationItemsPerCategory,
			Items:    &recommendationItem,
		})
	}
	return ShapeRule{Fields: fields, Closed: true}
}

// ProviderListRule requires key to hold a list of objects.
func ProviderListRule(key string) ShapeRule {
	return ShapeRule{Fields: []FieldRule{
		{Key: key, Types: array, Required: true, Items: &ShapeRule{}},
	}}
}

var (
	fixedOnce       sync.Once
	fixedValidators map[string]*Validator
	fixedErr        error
)

func fixed(kind string) (*Validator, error) {
	fixedOnce.Do(func() {
		fixedValidators = map[string]*Validator{}
		rules := map[string]ShapeRule{
			KindRecommendation: RecommendationRule(),
			KindHotels:         ProviderListRule("hotels"),
			KindFlights:        ProviderListRule("flights"),
		}
		for k, rule := range rules {
			v, err := NewValidator(k, rule)
			if err != nil {
				fixedErr = err
				return
			}
			fixedValidators[k] = v
		}
	})
	if fixedErr != nil {
		return nil, fixedErr
	}
	return fixedValidators[kind], nil
}

// ValidateItinerary checks an itinerary candidate.
func ValidateItinerary(doc any, expectedDays int) error {
	v, err := NewValidator(KindItinerary, ItineraryRule(expectedDays))
	if err != nil {
		return err
	}
	return v.Validate(doc)
}

func ValidateRecommendations(doc any) error {
	return validateFixed(KindRecommendation, doc)
}

func ValidateHotels(doc any) error {
	return validateFixed(KindHotels, doc)
}

func ValidateFlights(doc any) error {
	return validateFixed(KindFlights, doc)
}

func validateFixed(kind string, doc any) error {
	v, err := fixed(kind)
	if err != nil {
		return err
	}
	return v.Validate(doc)
}
