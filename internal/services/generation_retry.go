package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"yatra/pkg/metrics"
	"yatra/pkg/utils"
)

type AttemptState string

const (
	StatePending   AttemptState = "pending"
	StateParsing   AttemptState = "parsing"
	StateAccepted  AttemptState = "accepted"
	StateRetrying  AttemptState = "retrying"
	StateExhausted AttemptState = "exhausted"
)

const DefaultMaxAttempts = 3

// GenerationPlan describes one logical generation request.
type GenerationPlan[T any] struct {
	Kind        string
	MaxAttempts int
	// Request builds the prompt for a 0-based attempt. lastReason is empty on the first attempt.
	Request func(attempt int, lastReason string) utils.GenerationRequest
	// Validate checks document shape. A failure triggers a retry.
	Validate func(doc map[string]any) error
	// Accept converts a shape-valid document. A failure also triggers a retry.
	Accept func(ctx context.Context, doc map[string]any) (T, error)
}

type GenerationOutcome[T any] struct {
	Value    T
	Attempts int
	Failures []string
	State    AttemptState
}

// RetryController drives sequential generate, parse and validate cycles.
type RetryController struct {
	client utils.GenerationClientInterface
	log    *zap.Logger
}

func NewRetryController(client utils.GenerationClientInterface, log *zap.Logger) *RetryController {
	return &RetryController{client: client, log: log}
}

func (r *RetryController) Provider() string {
	return r.client.Provider()
}

// Generate runs plan until a document is accepted or attempts run out. Context
// cancellation aborts immediately and is returned as is.
func Generate[T any](ctx context.Context, r *RetryController, plan GenerationPlan[T]) (GenerationOutcome[T], error) {
	maxAttempts := plan.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	log := r.log.With(zap.String("kind", plan.Kind), zap.String("provider", r.client.Provider()))

	out := GenerationOutcome[T]{State: StatePending}
	var (
		lastReason string
		lastErr    error
	)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out.Attempts = attempt + 1
		out.State = StatePending

		req := plan.Request(attempt, lastReason)
		raw, err := r.client.GenerateJSON(ctx, req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return out, ctxErr
			}
			lastErr = err
			lastReason = fmt.Sprintf("generation call failed: %v", err)
			metrics.GenerationAttempts.WithLabelValues(plan.Kind, "error").Inc()
			out.Failures = append(out.Failures, lastReason)
			out.State = StateRetrying
			log.Warn("generation attempt failed", zap.Int("attempt", out.Attempts), zap.Error(err))
			continue
		}

		out.State = StateParsing
		log.Debug("raw model output", zap.Int("attempt", out.Attempts), zap.String("raw", raw))

		value, err := acceptAttempt(ctx, plan, raw)
		if err == nil {
			out.Value = value
			out.State = StateAccepted
			metrics.GenerationAttempts.WithLabelValues(plan.Kind, "accepted").Inc()
			log.Info("generation accepted", zap.Int("attempt", out.Attempts))
			return out, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}

		lastErr = err
		lastReason = failureReason(err)
		out.Failures = append(out.Failures, fmt.Sprintf("attempt %d: %s", out.Attempts, lastReason))
		out.State = StateRetrying
		metrics.GenerationAttempts.WithLabelValues(plan.Kind, "rejected").Inc()
		log.Warn("generation attempt rejected",
			zap.Int("attempt", out.Attempts),
			zap.Int("max_attempts", maxAttempts),
			zap.String("reason", lastReason))
	}

	out.State = StateExhausted
	metrics.GenerationExhausted.WithLabelValues(plan.Kind).Inc()
	if lastReason == "" {
		lastReason = "no attempt produced a document"
	}
	return out, &utils.GenerationExhaustedError{
		Kind:       plan.Kind,
		Attempts:   out.Attempts,
		LastReason: lastReason,
		Err:        lastErr,
	}
}

func acceptAttempt[T any](ctx context.Context, plan GenerationPlan[T], raw string) (T, error) {
	var zero T
	if strings.TrimSpace(raw) == "" {
		return zero, utils.ErrEmptyModelResponse
	}
	doc, err := utils.DecodeJSONObject(raw)
	if err != nil {
		return zero, err
	}
	if plan.Validate != nil {
		if err := plan.Validate(doc); err != nil {
			return zero, err
		}
	}
	if plan.Accept == nil {
		if v, ok := any(doc).(T); ok {
			return v, nil
		}
		return zero, fmt.Errorf("no accept step for %T", zero)
	}
	return plan.Accept(ctx, doc)
}

func failureReason(err error) string {
	var (
		extraction *utils.ExtractionError
		schema     *utils.SchemaError
		validation *utils.ValidationError
	)
	switch {
	case errors.Is(err, utils.ErrEmptyModelResponse):
		return "model returned an empty response"
	case errors.As(err, &extraction):
		return extraction.Reason
	case errors.As(err, &schema):
		return strings.Join(schema.Reasons, "; ")
	case errors.As(err, &validation):
		return validation.Error()
	default:
		return err.Error()
	}
}
