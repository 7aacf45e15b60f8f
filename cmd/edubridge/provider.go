package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/edubridge"
	"github.com/fwojciec/edubridge/anthropic"
	"github.com/fwojciec/edubridge/gemini"
)

const (
	providerGemini    = "gemini"
	providerAnthropic = "anthropic"
)

var errMissingKey = errors.New("API key not set")

// providerConfig is the resolved provider selection.
type providerConfig struct {
	name  string
	key   string // empty when no credential was found
	model string
}

func (c providerConfig) envVar() string {
	if c.name == providerAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// resolveConfig selects the provider and its API key. All env var values
// are passed in as parameters; env is only read in main(). A missing key is
// not an error: the caller warns and every generation call fails instead.
func resolveConfig(providerFlag, apiKeyFlag, anthropicEnvKey, geminiEnvKey string) (providerConfig, error) {
	name := providerFlag
	if name == "" {
		hasAnthropic := anthropicEnvKey != ""
		hasGemini := geminiEnvKey != ""
		switch {
		case hasAnthropic && hasGemini:
			return providerConfig{}, fmt.Errorf("multiple API keys found (ANTHROPIC_API_KEY, GEMINI_API_KEY): use --provider to select")
		case hasAnthropic:
			name = providerAnthropic
		default:
			name = providerGemini
		}
	}

	key := apiKeyFlag
	switch name {
	case providerAnthropic:
		if key == "" {
			key = anthropicEnvKey
		}
	case providerGemini:
		if key == "" {
			key = geminiEnvKey
		}
	default:
		return providerConfig{}, fmt.Errorf("unknown provider %q: must be %q or %q", name, providerGemini, providerAnthropic)
	}
	return providerConfig{name: name, key: key}, nil
}

// newGenerator constructs the provider client and returns the tools it
// serves.
func newGenerator(ctx context.Context, cfg providerConfig) (edubridge.Generator, []edubridge.Tool, error) {
	switch cfg.name {
	case providerAnthropic:
		if cfg.key == "" {
			return unavailable{provider: cfg.name}, anthropic.Tools(), nil
		}
		var opts []anthropic.Option
		if cfg.model != "" {
			opts = append(opts, anthropic.WithModel(cfg.model))
		}
		return anthropic.New(cfg.key, opts...), anthropic.Tools(), nil
	case providerGemini:
		if cfg.key == "" {
			return unavailable{provider: cfg.name}, gemini.Tools(), nil
		}
		var opts []gemini.Option
		if cfg.model != "" {
			opts = append(opts, gemini.WithModel(cfg.model))
		}
		client, err := gemini.New(ctx, cfg.key, opts...)
		if err != nil {
			return nil, nil, err
		}
		return client, gemini.Tools(), nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.name)
	}
}

// unavailable stands in for a provider whose credential is missing, so the
// run proceeds and each task reports the failure.
type unavailable struct {
	provider string
}

func (u unavailable) Generate(context.Context, edubridge.GenerateRequest) (string, error) {
	return "", fmt.Errorf("%s: %w", u.provider, errMissingKey)
}
