package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/edubridge/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGlob(t *testing.T) {
	t.Parallel()

	t.Run("matches files with simple pattern", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "b.md"), "")
		writeFile(t, filepath.Join(dir, "a.md"), "")
		writeFile(t, filepath.Join(dir, "c.txt"), "")

		got, err := fs.Glob(dir, "*.md")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md")}, got)
	})

	t.Run("matches files recursively with doublestar", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "root.md"), "")
		writeFile(t, filepath.Join(dir, "sub", "nested.md"), "")

		got, err := fs.Glob(dir, "**/*.md")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("no matches", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Glob(t.TempDir(), "*.md")
		assert.ErrorIs(t, err, fs.ErrNoMatches)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Glob(t.TempDir(), "[")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid glob pattern")
	})

	t.Run("empty pattern", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Glob(t.TempDir(), "")
		assert.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "f.md")
		writeFile(t, path, "x")
		_, err := fs.Glob(path, "*")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Glob(filepath.Join(t.TempDir(), "missing"), "*")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadPrompts(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "01-energy.md"), "Explain battery storage.\n---\nQuiz me on anodes.\n")
	writeFile(t, filepath.Join(dir, "02-careers.md"), "\n\nHow do I prepare for a data analyst interview?\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	got, err := fs.LoadPrompts(dir, "*.md")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Explain battery storage.",
		"Quiz me on anodes.",
		"How do I prepare for a data analyst interview?",
	}, got)
}

func TestLoadPrompts_FileTooLarge(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "big.md"), strings.Repeat("a", 256*1024+1))

	_, err := fs.LoadPrompts(dir, "*.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestSplitPrompts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "one prompt", []string{"one prompt"}},
		{"multiline prompt kept whole", "line one\nline two", []string{"line one\nline two"}},
		{"separated", "a\n---\nb", []string{"a", "b"}},
		{"crlf", "a\r\n---\r\nb\r\n", []string{"a", "b"}},
		{"blank chunks dropped", "---\n\n---\na\n---\n", []string{"a"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.SplitPrompts(tt.in))
		})
	}
}

func TestLoadPromptGlob(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "prompts", "week1", "a.md"), "first")
	writeFile(t, filepath.Join(dir, "prompts", "week2", "b.md"), "second")

	got, err := fs.LoadPromptGlob(filepath.Join(dir, "prompts") + "/**/*.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)
}
