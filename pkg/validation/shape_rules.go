// Package validation checks candidate model documents against declarative
// shape rules. Rules compile to JSON Schema and run through gojsonschema.
package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"yatra/pkg/utils"
)

const (
	KindItinerary      = "itinerary"
	KindRecommendation = "recommendation"
	KindHotels         = "hotels"
	KindFlights        = "flights"
)

// RecommendationCategories are the fixed buckets of a recommendation set, in output order.
var RecommendationCategories = []string{"men", "women", "kids", "accessories"}

const RecommendationItemsPerCategory = 4

// FieldRule describes one key of an object.
type FieldRule struct {
	Key      string
	Types    []string // JSON Schema type names; empty accepts any value
	Required bool
	NonBlank bool // strings must contain a non-space character
	MinItems int
	MaxItems int // 0 means unbounded
	Items    *ShapeRule
}

// ShapeRule describes an object. Closed objects reject keys not listed in Fields.
type ShapeRule struct {
	Fields []FieldRule
	Closed bool
}

func (r ShapeRule) schema() map[string]any {
	props := make(map[string]any, len(r.Fields))
	required := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		props[f.Key] = f.schema()
		if f.Required {
			required = append(required, f.Key)
		}
	}
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	if r.Closed {
		s["additionalProperties"] = false
	}
	return s
}

func (f FieldRule) schema() map[string]any {
	s := map[string]any{}
	switch len(f.Types) {
	case 0:
	case 1:
		s["type"] = f.Types[0]
	default:
		s["type"] = f.Types
	}
	if f.NonBlank {
		s["pattern"] = `\S`
	}
	if f.MinItems > 0 {
		s["minItems"] = f.MinItems
	}
	if f.MaxItems > 0 {
		s["maxItems"] = f.MaxItems
	}
	if f.Items != nil {
		s["items"] = f.Items.schema()
	}
	return s
}

// Validator runs one compiled rule set.
type Validator struct {
	kind   string
	schema *gojsonschema.Schema
}

func NewValidator(kind string, rule ShapeRule) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(rule.schema()))
	if err != nil {
		return nil, fmt.Errorf("compile %s shape rules: %w", kind, err)
	}
	return &Validator{kind: kind, schema: schema}, nil
}

// Validate returns nil or a *utils.SchemaError with sorted, readable reasons.
func (v *Validator) Validate(doc any) error {
	if doc == nil {
		return &utils.SchemaError{Kind: v.kind, Reasons: []string{"document is empty"}}
	}
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &utils.SchemaError{Kind: v.kind, Reasons: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	seen := map[string]struct{}{}
	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reason := describe(v.kind, desc)
		if _, dup := seen[reason]; dup {
			continue
		}
		seen[reason] = struct{}{}
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	return &utils.SchemaError{Kind: v.kind, Reasons: reasons}
}

func describe(kind string, desc gojsonschema.ResultError) string {
	path := readablePath(desc.Field())
	details := desc.Details()
	property, _ := details["property"].(string)

	switch desc.Type() {
	case "required":
		if path == "" {
			if kind == KindRecommendation {
				return fmt.Sprintf("category %s missing", property)
			}
			return fmt.Sprintf("%s missing", property)
		}
		return fmt.Sprintf("missing field %s in %s", property, path)
	case "array_min_items", "array_max_items":
		return fmt.Sprintf("wrong item count in %s", orDocument(path))
	case "invalid_type":
		return fmt.Sprintf("%s must be %v", orDocument(path), details["expected"])
	case "pattern":
		return fmt.Sprintf("%s must be a non-empty string", orDocument(path))
	case "additional_property_not_allowed":
		if path == "" && kind == KindRecommendation {
			return fmt.Sprintf("unexpected category %s", property)
		}
		return fmt.Sprintf("unexpected key %s in %s", property, orDocument(path))
	default:
		return desc.String()
	}
}

// readablePath turns "men.0.title" into "men[0].title"; the root becomes "".
func readablePath(field string) string {
	if field == "" || field == gojsonschema.STRING_CONTEXT_ROOT {
		return ""
	}
	parts := strings.Split(field, ".")
	var b strings.Builder
	for i, p := range parts {
		if _, err := strconv.Atoi(p); err == nil {
			b.WriteString("[" + p + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

func orDocument(path string) string {
	if path == "" {
		return "document"
	}
	return path
}
