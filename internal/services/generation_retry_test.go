package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yatra/pkg/utils"
	"yatra/pkg/validation"
)

func docPlan(maxAttempts int, validate func(map[string]any) error) GenerationPlan[map[string]any] {
	return GenerationPlan[map[string]any]{
		Kind:        "test",
		MaxAttempts: maxAttempts,
		Request: func(attempt int, lastReason string) utils.GenerationRequest {
			prompt := "base"
			if attempt > 0 {
				prompt = "strict: " + lastReason
			}
			return utils.GenerationRequest{Prompt: prompt}
		},
		Validate: validate,
	}
}

func TestGenerate_RetriesAfterTruncatedOutput(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"destination": "Goa", "days": [{"summary": "x"`,
		"```json\n{\"destination\": \"Jaipur\", \"budget\": 1, \"currency\": \"INR\", \"days\": [{\"summary\": \"a\", \"activities\": []}]}\n```",
	}}
	r := NewRetryController(client, zap.NewNop())

	out, err := Generate(context.Background(), r, docPlan(3, func(doc map[string]any) error {
		return validation.ValidateItinerary(doc, 1)
	}))

	require.NoError(t, err)
	assert.Equal(t, 2, out.Attempts)
	assert.Equal(t, StateAccepted, out.State)
	assert.Equal(t, "Jaipur", out.Value["destination"])
	require.Len(t, out.Failures, 1)
	assert.Contains(t, out.Failures[0], "unterminated")

	require.Equal(t, 2, client.calls())
	assert.Equal(t, "base", client.requests[0].Prompt)
	assert.Contains(t, client.requests[1].Prompt, "strict: ")
	assert.Contains(t, client.requests[1].Prompt, "unterminated")
}

func TestGenerate_ExhaustsWithLastReason(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`no json here`,
		`{"destination": "Goa"}`,
		`{"destination": "Goa", "budget": "lots", "currency": "INR", "days": []}`,
	}}
	r := NewRetryController(client, zap.NewNop())

	out, err := Generate(context.Background(), r, docPlan(3, func(doc map[string]any) error {
		return validation.ValidateItinerary(doc, 2)
	}))

	var exhausted *utils.GenerationExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, "test", exhausted.Kind)
	assert.Contains(t, exhausted.LastReason, "budget must be number")
	assert.Equal(t, StateExhausted, out.State)
	assert.Len(t, out.Failures, 3)

	var schemaErr *utils.SchemaError
	assert.True(t, errors.As(err, &schemaErr), "last failure stays reachable")
}

func TestGenerate_ClientErrorsAndEmptyOutputAreRetried(t *testing.T) {
	client := &scriptedClient{
		errs:      []error{errUpstream, nil, nil},
		responses: []string{"", "   ", `{"ok": true}`},
	}
	r := NewRetryController(client, zap.NewNop())

	out, err := Generate(context.Background(), r, docPlan(3, nil))

	require.NoError(t, err)
	assert.Equal(t, 3, out.Attempts)
	assert.Equal(t, true, out.Value["ok"])
	assert.Contains(t, out.Failures[0], "upstream unavailable")
	assert.Contains(t, out.Failures[1], "empty response")
}

func TestGenerate_DefaultsAttemptLimit(t *testing.T) {
	client := &scriptedClient{}
	r := NewRetryController(client, zap.NewNop())

	_, err := Generate(context.Background(), r, docPlan(0, nil))

	require.Error(t, err)
	assert.Equal(t, DefaultMaxAttempts, client.calls())
}

func TestGenerate_CancelledContextStopsImmediately(t *testing.T) {
	client := &scriptedClient{responses: []string{`{"ok": true}`}}
	r := NewRetryController(client, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, r, docPlan(3, nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, client.calls())
}

func TestGenerate_AcceptFailureTriggersRetry(t *testing.T) {
	client := &scriptedClient{responses: []string{`{"n": 1}`, `{"n": 2}`}}
	r := NewRetryController(client, zap.NewNop())

	plan := GenerationPlan[int]{
		Kind: "numbers",
		Request: func(int, string) utils.GenerationRequest {
			return utils.GenerationRequest{Prompt: "n"}
		},
		Accept: func(_ context.Context, doc map[string]any) (int, error) {
			n := int(doc["n"].(float64))
			if n < 2 {
				return 0, &utils.ValidationError{Category: "men", Item: "Linen Shirt", Reason: "duplicate recommendation"}
			}
			return n, nil
		},
	}
	out, err := Generate(context.Background(), r, plan)

	require.NoError(t, err)
	assert.Equal(t, 2, out.Value)
	assert.Contains(t, client.requests[1].Prompt, "n")
	assert.Contains(t, out.Failures[0], `duplicate recommendation for "Linen Shirt" in men`)
}
