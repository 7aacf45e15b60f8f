package edubridge

import (
	"context"
	"fmt"
)

// Generator is a strategy interface for hosted text generation services.
// Generate is a blocking request/response call; any timeout is the
// implementation's concern.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest carries one generation call.
// The provider uses its own defaults when fields are zero/nil.
type GenerateRequest struct {
	Model             string // model ID, provider-specific; empty = provider default
	SystemInstruction string
	Temperature       *float64 // nil = provider default
	Tools             []Tool
	Input             string
}

// Validate checks universal constraints on GenerateRequest.
func (r GenerateRequest) Validate() error {
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 1) {
		return fmt.Errorf("temperature must be in [0, 1], got %g: %w", *r.Temperature, ErrValidation)
	}
	if r.Input == "" {
		return fmt.Errorf("input must not be empty: %w", ErrValidation)
	}
	return nil
}
