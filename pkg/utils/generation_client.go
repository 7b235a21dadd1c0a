package utils

import "context"

// GenerationRequest is one prompt sent to a JSON-producing model.
type GenerationRequest struct {
	SystemInstruction string
	Prompt            string
	MaxOutputTokens   int
}

// GenerationClientInterface returns raw model text. Empty text is not an error.
type GenerationClientInterface interface {
	GenerateJSON(ctx context.Context, req GenerationRequest) (string, error)
	Provider() string
}
