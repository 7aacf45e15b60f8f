// Command edubridge runs student requests through a multi-stage study
// assistant: research with web search, explanation, and consolidation into
// a study guide.
//
// Usage:
//
//	GEMINI_API_KEY=gk-...    edubridge [flags] [prompt...]
//	ANTHROPIC_API_KEY=sk-... edubridge --provider anthropic [flags] [prompt...]
//
// With no prompt arguments and no --prompts pattern, two built-in example
// prompts are run in one session. Environment variables may also be set in
// a .env file in the working directory.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/fwojciec/edubridge"
	"github.com/fwojciec/edubridge/agent"
	"github.com/fwojciec/edubridge/fs"
	"github.com/fwojciec/edubridge/logging"
	"github.com/fwojciec/edubridge/memory"
	"github.com/fwojciec/edubridge/ttlcache"
	"github.com/fwojciec/edubridge/yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const defaultSessionKey = "capstone_student_session"

// examplePrompts run when no prompts are given. The second is a follow-up
// on the first and shares its session.
var examplePrompts = []string{
	"Explain the recent advancements in sustainable energy storage.",
	"Give me one more flashcard about a key term from the last topic.",
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "edubridge: %v\n", err)
		os.Exit(1)
	}
}

// options holds parsed command-line flags.
type options struct {
	provider     string
	apiKey       string
	model        string
	profile      string
	session      string
	prompts      string
	logFormat    string
	verbose      bool
	maxHistory   int
	sessionTTL   time.Duration
	carryHistory bool
	transcript   string
	history      bool
	width        int
}

func parseFlags(args []string) (options, []string, error) {
	var o options
	fset := pflag.NewFlagSet("edubridge", pflag.ContinueOnError)
	fset.StringVar(&o.provider, "provider", "", "Provider: gemini, anthropic (auto-detected from env vars if omitted)")
	fset.StringVar(&o.apiKey, "api-key", "", "API key (overrides the provider's env var)")
	fset.StringVar(&o.model, "model", "", "Default model ID for stages that name none")
	fset.StringVar(&o.profile, "profile", "", "Path to a YAML agent profile (default: built-in three-stage profile)")
	fset.StringVarP(&o.session, "session", "s", defaultSessionKey, "Session key shared by all prompts in this run")
	fset.StringVar(&o.prompts, "prompts", "", "Glob of prompt files to run, e.g. 'prompts/**/*.md'")
	fset.StringVar(&o.logFormat, "log-format", string(logging.FormatPipe), "Log format: pipe, tint")
	fset.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logs")
	fset.IntVar(&o.maxHistory, "max-history", 0, "Keep at most this many turns per session (0 = unbounded)")
	fset.DurationVar(&o.sessionTTL, "session-ttl", 0, "Expire sessions idle for this long (0 = never)")
	fset.BoolVar(&o.carryHistory, "carry-history", false, "Feed prior turns of the session into the pipeline")
	fset.StringVar(&o.transcript, "transcript", "", "Write the session transcript as JSON to this path ('-' for stdout)")
	fset.BoolVar(&o.history, "history", false, "Print the session history table after the run")
	fset.IntVar(&o.width, "width", 80, "Output wrap width")
	if err := fset.Parse(args); err != nil {
		return options{}, nil, err
	}
	if o.maxHistory < 0 {
		return options{}, nil, fmt.Errorf("--max-history must not be negative")
	}
	if o.sessionTTL < 0 {
		return options{}, nil, fmt.Errorf("--session-ttl must not be negative")
	}
	return o, fset.Args(), nil
}

func run() error {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	opts, args, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger, err := logging.New(os.Stderr, logging.Format(opts.logFormat), logging.Options{
		RunID: logging.NewRunID(),
		Level: level,
	})
	if err != nil {
		return err
	}

	// Env vars are read here and passed as values.
	cfg, err := resolveConfig(opts.provider, opts.apiKey,
		os.Getenv("ANTHROPIC_API_KEY"), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		return err
	}
	cfg.model = opts.model
	if cfg.key == "" {
		logger.Warn("API key not set; generation calls will fail", "provider", cfg.name, "env", cfg.envVar())
	}

	gen, tools, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	profile := edubridge.DefaultProfile()
	if opts.profile != "" {
		if profile, err = yaml.LoadProfile(opts.profile); err != nil {
			return err
		}
	}

	var store edubridge.SessionStore
	if opts.sessionTTL > 0 {
		store = ttlcache.New(opts.sessionTTL,
			ttlcache.WithMaxHistory(opts.maxHistory),
			ttlcache.WithLogger(logger))
	} else {
		store = memory.New(memory.WithMaxHistory(opts.maxHistory))
	}

	var orchOpts []agent.Option
	if opts.carryHistory {
		orchOpts = append(orchOpts, agent.WithHistoryInjection())
	}
	orch, err := buildOrchestrator(profile, gen, tools, store, logger, orchOpts...)
	if err != nil {
		return err
	}

	prompts, err := collectPrompts(args, opts.prompts)
	if err != nil {
		return err
	}

	app := &app{
		out:     os.Stdout,
		orch:    orch,
		store:   store,
		theme:   edubridge.DefaultTheme(),
		width:   opts.width,
		session: opts.session,
	}
	app.printBanner(profile)
	failed := app.runPrompts(ctx, prompts)

	if opts.history {
		app.printHistory()
	}
	if opts.transcript != "" {
		if err := app.writeTranscript(opts.transcript); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tasks failed", failed, len(prompts))
	}
	return nil
}

// collectPrompts returns the positional prompts followed by prompts loaded
// from files matching pattern, or the example prompts when both are empty.
func collectPrompts(args []string, pattern string) ([]string, error) {
	prompts := append([]string(nil), args...)
	if pattern != "" {
		loaded, err := fs.LoadPromptGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("load prompts: %w", err)
		}
		prompts = append(prompts, loaded...)
	}
	if len(prompts) == 0 {
		prompts = append(prompts, examplePrompts...)
	}
	return prompts, nil
}

func writeTo(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
