package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"yatra/internal/models/response_models"
	"yatra/pkg/utils"
	"yatra/pkg/validation"
)

const shoppingSearchURL = "https://www.google.com/search?q="

var nonPriceChars = regexp.MustCompile(`[^\d.]`)

// RecommendationValidator binds a shape-valid recommendation document into a
// RecommendationSet. Any failing item fails the whole set.
type RecommendationValidator struct {
	search utils.ImageSearchInterface
	log    *zap.Logger
}

func NewRecommendationValidator(search utils.ImageSearchInterface, log *zap.Logger) *RecommendationValidator {
	return &RecommendationValidator{search: search, log: log}
}

// Validate checks every item in category order. budget <= 0 disables the price ceiling.
func (v *RecommendationValidator) Validate(ctx context.Context, doc map[string]any, city string, budget int) (response_models.RecommendationSet, error) {
	lookup := newImageLookup(v.search, v.log)
	out := make(response_models.RecommendationSet, len(validation.RecommendationCategories))

	for _, category := range validation.RecommendationCategories {
		rawItems, ok := doc[category].([]any)
		if !ok {
			return nil, &utils.ValidationError{Category: category, Reason: "category missing"}
		}

		items := make([]response_models.Recommendation, 0, len(rawItems))
		seen := make(map[[2]string]struct{}, len(rawItems))
		for i, raw := range rawItems {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			entry, ok := raw.(map[string]any)
			if !ok {
				return nil, &utils.ValidationError{Category: category, Item: fmt.Sprintf("#%d", i+1), Reason: "item is not an object"}
			}
			item, err := v.bindItem(ctx, lookup, entry, category, city, budget)
			if err != nil {
				return nil, err
			}

			key := [2]string{strings.ToLower(item.Title), strings.ToLower(item.ShoppingKeywords)}
			if _, dup := seen[key]; dup {
				return nil, &utils.ValidationError{Category: category, Item: item.Title, Reason: "duplicate recommendation"}
			}
			seen[key] = struct{}{}
			items = append(items, item)
		}
		out[category] = items
	}
	return out, nil
}

func (v *RecommendationValidator) bindItem(ctx context.Context, lookup *imageLookup, entry map[string]any, category, city string, budget int) (response_models.Recommendation, error) {
	var item response_models.Recommendation
	title, _ := nonBlank(entry["title"])

	fields := []struct {
		key string
		dst *string
	}{
		{"title", &item.Title},
		{"description", &item.Description},
		{"shopping_keywords", &item.ShoppingKeywords},
		{"weather_note", &item.WeatherNote},
	}
	for _, f := range fields {
		s, ok := nonBlank(entry[f.key])
		if !ok {
			return item, &utils.ValidationError{Category: category, Item: title, Field: f.key, Reason: "missing value"}
		}
		*f.dst = s
	}

	item.StyleTags = styleTags(entry["style_tags"])

	price, ok := coercePrice(entry["price_in_inr"])
	if !ok {
		return item, &utils.ValidationError{Category: category, Item: item.Title, Field: "price_in_inr", Reason: "invalid price"}
	}
	if budget > 0 && price > budget {
		return item, &utils.ValidationError{
			Category: category,
			Item:     item.Title,
			Field:    "price_in_inr",
			Reason:   fmt.Sprintf("price %d exceeds budget %d", price, budget),
		}
	}
	item.PriceInINR = price
	item.ShoppingURL = shoppingSearchURL + strings.ReplaceAll(item.ShoppingKeywords, " ", "+")

	subject := item.ShoppingKeywords
	if subject == "" {
		subject = item.Title
	}
	hit, ok := lookup.hero(ctx, fmt.Sprintf("%s %s %s travel outfit", subject, city, category), outfitImageLimit)
	if !ok {
		return item, &utils.ValidationError{Category: category, Item: item.Title, Field: "image_url", Reason: "no image found"}
	}
	item.ImageURL = hit.Link
	item.ImageThumbnail = hit.Thumbnail
	item.ImageContext = hit.Context
	return item, nil
}

func styleTags(v any) []string {
	tags := []string{}
	list, ok := v.([]any)
	if !ok {
		return tags
	}
	for _, t := range list {
		if s, ok := nonBlank(t); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// coercePrice accepts numbers or strings such as "₹2,500".
func coercePrice(v any) (int, bool) {
	f, ok := readPrice(v)
	if !ok {
		return 0, false
	}
	return amount(f)
}

// readPrice extracts the raw figure without range checks.
func readPrice(v any) (float64, bool) {
	if n, ok := number(v); ok {
		return n, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	cleaned := nonPriceChars.ReplaceAllString(s, "")
	if !strings.ContainsAny(cleaned, "0123456789") {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
