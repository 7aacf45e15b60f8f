// Package agent runs the study pipeline: stages backed by a Generator,
// a Pipeline that chains them, and an Orchestrator that binds a Pipeline to
// session history and surfaces failures.
package agent

import "log/slog"

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
