package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/edubridge"
	"github.com/jonboulle/clockwork"
)

// ErrorMarker prefixes every error string returned by Respond, so callers
// can tell failures from study material.
const ErrorMarker = "❌ Agent Error:"

// Orchestrator is the single entry point for tasks. It resolves the
// session, runs the pipeline and records successful exchanges.
type Orchestrator struct {
	runner        edubridge.Runner
	store         edubridge.SessionStore
	log           *slog.Logger
	clock         clockwork.Clock
	injectHistory bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger for task log lines.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithClock sets the clock used to timestamp turns.
func WithClock(c clockwork.Clock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

// WithHistoryInjection prefixes the pipeline input with the session's prior
// turns. By default the pipeline sees only the current request.
func WithHistoryInjection() Option {
	return func(o *Orchestrator) { o.injectHistory = true }
}

// New returns an Orchestrator that runs tasks through runner and records
// them in store.
func New(runner edubridge.Runner, store edubridge.SessionStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		runner: runner,
		store:  store,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = orDiscard(o.log)
	return o
}

// RunTask runs the pipeline for input in the session identified by
// sessionKey. On success the user turn and the assistant turn are appended
// to the session, in that order, and the output is returned. On failure the
// session is left untouched and a *edubridge.TaskError is returned.
//
// Identical inputs are never deduplicated: each call is an independent run.
func (o *Orchestrator) RunTask(ctx context.Context, sessionKey, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		err := fmt.Errorf("input must not be empty: %w", edubridge.ErrValidation)
		o.log.Warn("task rejected", "session", sessionKey, "error", err)
		return "", &edubridge.TaskError{SessionKey: sessionKey, Err: err}
	}

	session := o.store.GetOrCreate(sessionKey)
	o.log.Info("running task", "session", sessionKey, "query", edubridge.Preview(input, edubridge.PreviewLength))

	pipelineInput := input
	if o.injectHistory && session.Len() > 0 {
		pipelineInput = withHistory(session.History, input)
	}

	out, err := o.runner.Run(ctx, pipelineInput)
	if err != nil {
		o.log.Error("task failed", "session", sessionKey, "error", err)
		return "", &edubridge.TaskError{SessionKey: sessionKey, Err: err}
	}

	now := o.clock.Now()
	session.Append(
		edubridge.Turn{Role: edubridge.RoleUser, Text: input, Timestamp: now},
		edubridge.Turn{Role: edubridge.RoleAssistant, Text: out, Timestamp: now},
	)
	o.log.Info("task succeeded", "session", sessionKey, "history_len", session.Len())
	return out, nil
}

// Respond is RunTask for callers that only want a string: the study
// material, or the failure cause prefixed with ErrorMarker.
func (o *Orchestrator) Respond(ctx context.Context, sessionKey, input string) string {
	out, err := o.RunTask(ctx, sessionKey, input)
	if err != nil {
		return FormatError(err)
	}
	return out
}

// FormatError renders err as a user-facing message starting with ErrorMarker.
func FormatError(err error) string {
	cause := err
	var taskErr *edubridge.TaskError
	if errors.As(err, &taskErr) {
		cause = taskErr.Err
	}
	return fmt.Sprintf("%s An issue occurred during the study generation workflow: %v", ErrorMarker, cause)
}

// IsError reports whether s was produced by FormatError.
func IsError(s string) bool {
	return strings.HasPrefix(s, ErrorMarker)
}

func withHistory(history []edubridge.Turn, input string) string {
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, t := range history {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Text)
	}
	b.WriteString("\nCurrent request:\n")
	b.WriteString(input)
	return b.String()
}
