package agent

import (
	"context"
	"fmt"
	"log/slog"
	"github.com/fwojciec/edubridge"
	"github.com/jonboulle/clockwork"
)

// Interface compliance check.
var _ edubridge.Runner = (*Pipeline)(nil)

// Pipeline runs stages strictly in declaration order. Each stage's output
// is the next stage's input. The order is fixed at construction.
type Pipeline struct {
	stages []edubridge.Stage
	log    *slog.Logger
	clock  clockwork.Clock
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the logger for per-stage debug lines.
func WithPipelineLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.log = l }
}

// WithPipelineClock sets the clock used to time stages.
func WithPipelineClock(c clockwork.Clock) PipelineOption {
	return func(p *Pipeline) { p.clock = c }
}

// NewPipeline returns a Pipeline over stages. It fails with
// edubridge.ErrEmptyPipeline when no stages are given.
func NewPipeline(stages []edubridge.Stage, opts ...PipelineOption) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: %w", edubridge.ErrEmptyPipeline, edubridge.ErrValidation)
	}
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("stage %d is nil: %w", i+1, edubridge.ErrValidation)
		}
	}
	p := &Pipeline{
		stages: append([]edubridge.Stage(nil), stages...),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = orDiscard(p.log)
	return p, nil
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run executes every stage and returns the last stage's output. The first
// failure aborts the run; later stages are not invoked and no partial
// output is returned.
func (p *Pipeline) Run(ctx context.Context, input string) (string, error) {
	if len(p.stages) == 0 {
		return "", edubridge.ErrEmptyPipeline
	}
	text := input
	for i, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		start := p.clock.Now()
		out, err := s.Invoke(ctx, text)
		if err != nil {
			return "", fmt.Errorf("pipeline aborted at stage %d/%d: %w", i+1, len(p.stages), err)
		}
		p.log.Debug("stage completed", "stage", s.Name(), "duration", p.clock.Since(start), "output_len", len(out))
		text = out
	}
	return text, nil
}
