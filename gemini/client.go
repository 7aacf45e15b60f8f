package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/edubridge"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ edubridge.Generator = (*Client)(nil)

// Client implements [edubridge.Generator] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the default model ID, used when a request names none.
// Default is gemini-2.5-flash.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Model returns the default model ID.
func (c *Client) Model() string { return c.model }

// Generate sends req as a single user turn and returns the response text.
func (c *Client) Generate(ctx context.Context, req edubridge.GenerateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	model := req.Model
	if model == "" {
		model = c.model
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Input}},
	}}
	resp, err := c.client.Models.GenerateContent(ctx, model, contents, BuildConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text, err := ExtractText(resp)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return text, nil
}

// BuildConfig converts req to a genai generation config.
// Exported for testing.
func BuildConfig(req edubridge.GenerateRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Tools: ConvertTools(req.Tools),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}
	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}
	return config
}

// ConvertTools converts resolved tools to genai tools. Tools with a
// capability this provider does not serve are skipped.
// Exported for testing.
func ConvertTools(tools []edubridge.Tool) []*genai.Tool {
	var result []*genai.Tool
	for _, t := range tools {
		switch t.Capability {
		case edubridge.CapabilitySearch:
			result = append(result, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
		}
	}
	return result
}

// ExtractText concatenates the text parts of the first candidate, skipping
// thought parts. It returns [edubridge.ErrEmptyResponse] when there is no
// text.
// Exported for testing.
func ExtractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", edubridge.ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", edubridge.ErrEmptyResponse
	}
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", edubridge.ErrEmptyResponse
	}
	return b.String(), nil
}
