package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidTripDates    = errors.New("invalid trip dates")
	ErrItineraryNotFound   = errors.New("itinerary not found")
	ErrDatabaseError       = errors.New("database error")
	ErrEmptyModelResponse  = errors.New("empty response from model")
	ErrImageLookupDisabled = errors.New("image lookup is not configured")
)

// ExtractionError means no balanced JSON object could be recovered from model text.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "json extraction failed: " + e.Reason
}

// SchemaError reports a structurally invalid candidate document.
type SchemaError struct {
	Kind    string
	Reasons []string
}

func (e *SchemaError) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("%s document failed shape validation", e.Kind)
	}
	return fmt.Sprintf("%s document failed shape validation: %s", e.Kind, strings.Join(e.Reasons, "; "))
}

// Reason returns the first recorded reason, or a generic message.
func (e *SchemaError) Reason() string {
	if len(e.Reasons) == 0 {
		return "invalid document shape"
	}
	return e.Reasons[0]
}

// GenerationExhaustedError is returned once every generation attempt has failed.
type GenerationExhaustedError struct {
	Kind       string
	Attempts   int
	LastReason string
	Err        error
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("%s generation failed after %d attempts: %s", e.Kind, e.Attempts, e.LastReason)
}

func (e *GenerationExhaustedError) Unwrap() error {
	return e.Err
}

// ValidationError names the recommendation item and field that broke a rule.
type ValidationError struct {
	Category string
	Item     string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason)
	if e.Item != "" {
		fmt.Fprintf(&b, " for %q", e.Item)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %s)", e.Field)
	}
	if e.Category != "" {
		fmt.Fprintf(&b, " in %s", e.Category)
	}
	return b.String()
}
