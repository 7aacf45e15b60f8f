package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/edubridge"
	"github.com/fwojciec/edubridge/agent"
	"github.com/fwojciec/edubridge/memory"
	"github.com/fwojciec/edubridge/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var searchTool = edubridge.Tool{Capability: edubridge.CapabilitySearch, Name: "web_search"}

// stageGenerator records each request and echoes its input under a
// heading, so tests can follow data through the stages.
func stageGenerator(mu *sync.Mutex, reqs *[]edubridge.GenerateRequest) *mock.Generator {
	return &mock.Generator{
		GenerateFn: func(ctx context.Context, req edubridge.GenerateRequest) (string, error) {
			mu.Lock()
			*reqs = append(*reqs, req)
			mu.Unlock()
			return "## Guide\n" + req.Input, nil
		},
	}
}

func newTestApp(t *testing.T, gen edubridge.Generator) (*app, *bytes.Buffer) {
	t.Helper()
	store := memory.New()
	orch, err := buildOrchestrator(edubridge.DefaultProfile(), gen, []edubridge.Tool{searchTool}, store, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	var out bytes.Buffer
	return &app{
		out:     &out,
		orch:    orch,
		store:   store,
		theme:   edubridge.DefaultTheme(),
		width:   60,
		session: defaultSessionKey,
	}, &out
}

func TestBuildOrchestrator_RunsDefaultProfileInOrder(t *testing.T) {
	t.Parallel()
	var (
		mu   sync.Mutex
		reqs []edubridge.GenerateRequest
	)
	a, _ := newTestApp(t, stageGenerator(&mu, &reqs))

	_, err := a.orch.RunTask(context.Background(), "s1", "energy storage")
	require.NoError(t, err)

	require.Len(t, reqs, 3)
	assert.Equal(t, "energy storage", reqs[0].Input)
	assert.Equal(t, []edubridge.Tool{searchTool}, reqs[0].Tools)
	require.NotNil(t, reqs[0].Temperature)
	assert.Equal(t, 0.0, *reqs[0].Temperature)
	assert.Empty(t, reqs[1].Tools)
	assert.Equal(t, "## Guide\nenergy storage", reqs[1].Input)
	assert.Contains(t, reqs[2].SystemInstruction, "'EduBridge' project")
	assert.NotContains(t, reqs[2].SystemInstruction, "{{")
}

func TestBuildOrchestrator_MissingSearchTool(t *testing.T) {
	t.Parallel()
	gen := &mock.Generator{}
	_, err := buildOrchestrator(edubridge.DefaultProfile(), gen, nil, memory.New(), slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, edubridge.ErrUnknownCapability)
}

func TestBuildOrchestrator_InvalidProfile(t *testing.T) {
	t.Parallel()
	_, err := buildOrchestrator(edubridge.Profile{}, &mock.Generator{}, nil, memory.New(), slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, edubridge.ErrEmptyPipeline)
}

func TestApp_RunPrompts(t *testing.T) {
	t.Parallel()
	var (
		mu   sync.Mutex
		reqs []edubridge.GenerateRequest
	)
	a, out := newTestApp(t, stageGenerator(&mu, &reqs))

	failed := a.runPrompts(context.Background(), examplePrompts)
	assert.Zero(t, failed)

	got := out.String()
	assert.Contains(t, got, ">>> TEST 1: "+examplePrompts[0])
	assert.Contains(t, got, ">>> TEST 2: "+examplePrompts[1])
	assert.Equal(t, 4, a.store.GetOrCreate(defaultSessionKey).Len())
}

func TestApp_RunPromptsReportsFailures(t *testing.T) {
	t.Parallel()
	gen := &mock.Generator{
		GenerateFn: func(ctx context.Context, req edubridge.GenerateRequest) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	a, out := newTestApp(t, gen)

	failed := a.runPrompts(context.Background(), []string{"topic"})
	assert.Equal(t, 1, failed)
	assert.Contains(t, stripANSI(out.String()), agent.ErrorMarker)
	assert.Contains(t, out.String(), "quota exceeded")
	assert.Zero(t, a.store.GetOrCreate(defaultSessionKey).Len())
}

func TestApp_RunPromptsStopsWhenCanceled(t *testing.T) {
	t.Parallel()
	a, out := newTestApp(t, &mock.Generator{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Zero(t, a.runPrompts(ctx, []string{"a", "b"}))
	assert.NotContains(t, out.String(), ">>> TEST")
}

func TestApp_PrintBanner(t *testing.T) {
	t.Parallel()
	a, out := newTestApp(t, &mock.Generator{})
	a.printBanner(edubridge.DefaultProfile())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Repeat("=", 60), lines[0])
	assert.Equal(t, strings.Repeat(" ", 15)+bannerTitle, lines[1])
	assert.Equal(t, "EduBridge", strings.TrimSpace(lines[2]))
}

func TestCenter(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "  ab", center("ab", 6))
	assert.Equal(t, "  学习", center("学习", 8), "wide runes count as two columns")
	assert.Equal(t, "toolong", center("toolong", 3))
}

func TestApp_PrintHistory(t *testing.T) {
	t.Parallel()
	var (
		mu   sync.Mutex
		reqs []edubridge.GenerateRequest
	)
	a, out := newTestApp(t, stageGenerator(&mu, &reqs))
	a.runPrompts(context.Background(), []string{"energy storage"})
	out.Reset()

	a.printHistory()
	got := out.String()
	assert.Contains(t, got, "Session capstone_student_session (2 turns)")
	assert.Contains(t, got, "Role")
	assert.Contains(t, got, "user")
	assert.Contains(t, got, "assistant")
	assert.Contains(t, got, "energy storage")
}

func TestApp_WriteTranscript(t *testing.T) {
	t.Parallel()
	var (
		mu   sync.Mutex
		reqs []edubridge.GenerateRequest
	)

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()
		a, out := newTestApp(t, stageGenerator(&mu, &reqs))
		a.runPrompts(context.Background(), []string{"energy storage"})
		out.Reset()

		require.NoError(t, a.writeTranscript("-"))
		var env map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &env))
		assert.Equal(t, defaultSessionKey, env["key"])
		assert.Len(t, env["turns"], 2)
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestApp(t, stageGenerator(&mu, &reqs))
		a.runPrompts(context.Background(), []string{"energy storage"})

		path := filepath.Join(t.TempDir(), "out", "transcript.json")
		require.NoError(t, a.writeTranscript(path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"role": "assistant"`)
	})
}
