package edubridge

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a configuration or request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrEmptyPipeline indicates a pipeline was constructed without stages.
	ErrEmptyPipeline = errors.New("pipeline requires at least one stage")

	// ErrUnknownCapability indicates a stage asked for a tool capability
	// that no registered adapter provides.
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrEmptyResponse indicates the generation service returned no text.
	ErrEmptyResponse = errors.New("empty response from generation service")
)

// GenerationError is returned by a Stage when its call to the generation
// service fails. The underlying cause is available through errors.Unwrap.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// TaskError is returned when a task fails at the orchestrator boundary.
type TaskError struct {
	SessionKey string
	Err        error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task in session %q failed: %v", e.SessionKey, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }
