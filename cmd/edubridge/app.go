package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fwojciec/edubridge"
	"github.com/fwojciec/edubridge/agent"
	"github.com/fwojciec/edubridge/goldmark"
	"github.com/fwojciec/edubridge/json"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
)

const bannerTitle = "EDU BRIDGE LIVE TEST INTERFACE"

// buildOrchestrator wires the profile's stages into a pipeline and returns
// the orchestrator that runs it.
func buildOrchestrator(
	profile edubridge.Profile,
	gen edubridge.Generator,
	tools []edubridge.Tool,
	store edubridge.SessionStore,
	logger *slog.Logger,
	opts ...agent.Option,
) (*agent.Orchestrator, error) {
	cfgs, err := profile.StageConfigs()
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	registry := edubridge.NewRegistry(tools...)
	stages := make([]edubridge.Stage, len(cfgs))
	for i, cfg := range cfgs {
		s, err := agent.NewStage(cfg, gen,
			agent.WithRegistry(registry),
			agent.WithStageLogger(logger))
		if err != nil {
			return nil, err
		}
		stages[i] = s
	}
	pipeline, err := agent.NewPipeline(stages, agent.WithPipelineLogger(logger))
	if err != nil {
		return nil, err
	}
	opts = append([]agent.Option{agent.WithLogger(logger)}, opts...)
	return agent.New(pipeline, store, opts...), nil
}

// expirer is implemented by stores that drop idle sessions on demand.
type expirer interface {
	DeleteExpired()
}

// app prints a run of prompts to out.
type app struct {
	out     io.Writer
	orch    *agent.Orchestrator
	store   edubridge.SessionStore
	theme   edubridge.Theme
	width   int
	session string
}

func (a *app) printBanner(profile edubridge.Profile) {
	rule := strings.Repeat("=", a.width)
	fmt.Fprintln(a.out, rule)
	fmt.Fprintln(a.out, center(bannerTitle, a.width))
	if profile.AgentName != "" {
		fmt.Fprintln(a.out, center(profile.AgentName, a.width))
	}
	fmt.Fprintln(a.out, rule)
}

// center pads s on the left so it is centered in width display columns.
func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// runPrompts sends each prompt through the orchestrator in order, sharing
// one session, and prints the rendered results. It returns the number of
// failed tasks.
func (a *app) runPrompts(ctx context.Context, prompts []string) int {
	failed := 0
	for i, p := range prompts {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(a.out, "\n>>> TEST %d: %s\n\n", i+1, p)
		out := a.orch.Respond(ctx, a.session, p)
		if agent.IsError(out) {
			failed++
			fmt.Fprintln(a.out, goldmark.RenderError(out, a.theme))
		} else {
			fmt.Fprintln(a.out, goldmark.Render(out, a.width, a.theme))
		}
		fmt.Fprintln(a.out, strings.Repeat("-", a.width))
		if e, ok := a.store.(expirer); ok {
			e.DeleteExpired()
		}
	}
	return failed
}

func (a *app) printHistory() {
	sess := a.store.GetOrCreate(a.session)
	table := tablewriter.NewWriter(a.out)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"#", "Role", "Time", "Text"})
	for i, t := range sess.History {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			string(t.Role),
			t.Timestamp.Format("15:04:05"),
			edubridge.Preview(t.Text, edubridge.PreviewLength),
		})
	}
	fmt.Fprintf(a.out, "\nSession %s (%d turns)\n", sess.Key, sess.Len())
	table.Render()
}

func (a *app) writeTranscript(path string) error {
	sess := a.store.GetOrCreate(a.session)
	if path == "-" {
		data, err := json.MarshalSession(*sess)
		if err != nil {
			return fmt.Errorf("transcript: %w", err)
		}
		return writeTo(a.out, data)
	}
	if err := json.Save(path, *sess); err != nil {
		return fmt.Errorf("transcript: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Transcript saved to %s\n", path)
	return nil
}
