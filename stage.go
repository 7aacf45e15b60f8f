package edubridge

import (
	"context"
	"fmt"
)

// Stage is one step of a fixed-order text-in/text-out pipeline.
//
// Invoke receives the previous stage's output (the raw user request for the
// first stage) and returns this stage's output. Implementations hold no
// state between invocations, so a Stage may be shared by several pipelines.
type Stage interface {
	Name() string
	Invoke(ctx context.Context, input string) (string, error)
}

// StageConfig is the fixed instruction/configuration profile of a Stage.
type StageConfig struct {
	Name        string
	Model       string // empty = provider default
	Instruction string
	Temperature float64
	Tools       []Capability
}

// Validate checks that the configuration can back a Stage.
func (c StageConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("stage name must not be empty: %w", ErrValidation)
	}
	if c.Instruction == "" {
		return fmt.Errorf("stage %s: instruction must not be empty: %w", c.Name, ErrValidation)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("stage %s: temperature must be in [0, 1], got %g: %w", c.Name, c.Temperature, ErrValidation)
	}
	seen := make(map[Capability]bool, len(c.Tools))
	for _, t := range c.Tools {
		if t == "" {
			return fmt.Errorf("stage %s: empty capability: %w", c.Name, ErrValidation)
		}
		if seen[t] {
			return fmt.Errorf("stage %s: duplicate capability %q: %w", c.Name, t, ErrValidation)
		}
		seen[t] = true
	}
	return nil
}

// Clone returns a copy that shares no memory with c.
func (c StageConfig) Clone() StageConfig {
	if c.Tools != nil {
		c.Tools = append([]Capability(nil), c.Tools...)
	}
	return c
}

// Runner executes a pipeline of stages for one initial input and returns
// the final stage's output.
type Runner interface {
	Run(ctx context.Context, input string) (string, error)
}
