package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/edubridge"
)

// Interface compliance check.
var _ edubridge.Stage = (*Stage)(nil)

// Stage is an edubridge.Stage that delegates to a Generator under a fixed
// StageConfig.
type Stage struct {
	cfg   edubridge.StageConfig
	tools []edubridge.Tool
	gen   edubridge.Generator
	log   *slog.Logger
}

// StageOption configures a Stage.
type StageOption func(*stageOptions)

type stageOptions struct {
	registry *edubridge.Registry
	logger   *slog.Logger
}

// WithRegistry sets the registry that the stage's capabilities are
// resolved against. Without it, a stage that lists capabilities fails to
// construct.
func WithRegistry(r *edubridge.Registry) StageOption {
	return func(o *stageOptions) { o.registry = r }
}

// WithStageLogger sets the logger for per-invocation log lines.
func WithStageLogger(l *slog.Logger) StageOption {
	return func(o *stageOptions) { o.logger = l }
}

// NewStage validates cfg, resolves its capabilities and returns a Stage.
// The configuration is copied; later changes to cfg do not affect the Stage.
func NewStage(cfg edubridge.StageConfig, gen edubridge.Generator, opts ...StageOption) (*Stage, error) {
	var o stageOptions
	for _, opt := range opts {
		opt(&o)
	}
	if gen == nil {
		return nil, fmt.Errorf("stage %s: generator is required: %w", cfg.Name, edubridge.ErrValidation)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tools, err := o.registry.Resolve(cfg.Tools)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", cfg.Name, err)
	}
	return &Stage{
		cfg:   cfg.Clone(),
		tools: tools,
		gen:   gen,
		log:   orDiscard(o.logger),
	}, nil
}

// Name returns the configured stage name.
func (s *Stage) Name() string { return s.cfg.Name }

// Config returns a copy of the stage configuration.
func (s *Stage) Config() edubridge.StageConfig { return s.cfg.Clone() }

// Tools returns the resolved tool adapters.
func (s *Stage) Tools() []edubridge.Tool { return append([]edubridge.Tool(nil), s.tools...) }

// Invoke sends input to the generator under the stage's instruction and
// returns the generated text. Failures are returned as
// *edubridge.GenerationError; nothing is retried.
func (s *Stage) Invoke(ctx context.Context, input string) (string, error) {
	s.log.Info("stage invoked", "stage", s.cfg.Name, "input", edubridge.Preview(input, edubridge.PreviewLength))

	temp := s.cfg.Temperature
	out, err := s.gen.Generate(ctx, edubridge.GenerateRequest{
		Model:             s.cfg.Model,
		SystemInstruction: s.cfg.Instruction,
		Temperature:       &temp,
		Tools:             s.Tools(),
		Input:             input,
	})
	if err != nil {
		return "", &edubridge.GenerationError{Stage: s.cfg.Name, Err: err}
	}
	if out == "" {
		return "", &edubridge.GenerationError{Stage: s.cfg.Name, Err: edubridge.ErrEmptyResponse}
	}
	return out, nil
}
