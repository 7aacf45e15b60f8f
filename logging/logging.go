// Package logging builds the process-wide slog.Logger.
//
// Two formats are supported. The pipe format renders one line per record:
//
//	2026-02-18 12:00:00.000 | RUN_ID=1a2b3c4d | INFO | message key=value
//
// The tint format renders colorized developer output via
// github.com/lmittmann/tint with the run ID attached as an attribute.
//
// The run ID is generated once at startup with NewRunID and handed to New;
// nothing in this package reads it from a global.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/lmittmann/tint"
)

// Format selects the log line layout.
type Format string

const (
	FormatPipe Format = "pipe"
	FormatTint Format = "tint"
)

// TimeLayout is the timestamp layout of the pipe format.
const TimeLayout = "2006-01-02 15:04:05.000"

// NewRunID returns a short random identifier for one process lifetime.
func NewRunID() string {
	return uuid.NewString()[:8]
}

// Options configures New.
type Options struct {
	RunID string
	Level slog.Leveler    // nil = slog.LevelInfo
	Clock clockwork.Clock // nil = real clock
	// NoColor disables ANSI colors in the tint format.
	NoColor bool
}

// New returns a logger writing to w in the given format.
func New(w io.Writer, format Format, opts Options) (*slog.Logger, error) {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	switch format {
	case FormatPipe, "":
		return slog.New(NewHandler(w, opts)), nil
	case FormatTint:
		clock := opts.Clock
		h := tint.NewHandler(w, &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.TimeOnly,
			NoColor:    opts.NoColor,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					a.Value = slog.TimeValue(clock.Now())
				}
				return a
			},
		})
		return slog.New(h).With("run_id", opts.RunID), nil
	default:
		return nil, fmt.Errorf("unknown log format %q: must be %q or %q", format, FormatPipe, FormatTint)
	}
}
