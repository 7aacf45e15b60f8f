package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoMatches is returned when a pattern matches no files.
var ErrNoMatches = errors.New("no files match pattern")

// Glob returns the regular files under root matching pattern, sorted.
func Glob(root, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, errors.New("pattern is required")
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("access root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(root), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(root, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", pattern, ErrNoMatches)
	}
	sort.Strings(matches)
	return matches, nil
}

// LoadPrompts reads every file under root matching pattern and returns the
// prompts they contain, in file order.
func LoadPrompts(root, pattern string) ([]string, error) {
	paths, err := Glob(root, pattern)
	if err != nil {
		return nil, err
	}
	var prompts []string
	for _, p := range paths {
		got, err := readPrompts(p)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, got...)
	}
	return prompts, nil
}

// LoadPromptGlob is LoadPrompts for a pattern that carries its own base
// directory, such as "prompts/**/*.md" or "/abs/dir/*.txt".
func LoadPromptGlob(pattern string) ([]string, error) {
	base, pat := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return LoadPrompts(filepath.FromSlash(base), pat)
}

func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prompt file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPromptFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read prompt file %s: %w", path, err)
	}
	if len(data) > maxPromptFileSize {
		return nil, fmt.Errorf("prompt file %s exceeds %d bytes", path, maxPromptFileSize)
	}
	return SplitPrompts(string(data)), nil
}

// SplitPrompts splits text on separator lines and drops blank chunks.
func SplitPrompts(text string) []string {
	var (
		prompts []string
		cur     []string
	)
	flush := func() {
		if p := strings.TrimSpace(strings.Join(cur, "\n")); p != "" {
			prompts = append(prompts, p)
		}
		cur = cur[:0]
	}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == Separator {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return prompts
}
