package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/edubridge"
)

// Interface compliance check.
var _ edubridge.Generator = (*Client)(nil)

// Client implements [edubridge.Generator] for the Anthropic Messages API.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	reqOpts   []option.RequestOption
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the default model ID, used when a request names none.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithMaxTokens sets the output token limit for every call.
func WithMaxTokens(n int64) Option {
	return func(c *Client) { c.maxTokens = n }
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.reqOpts = append(c.reqOpts, option.WithBaseURL(url)) }
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.reqOpts = append(c.reqOpts, option.WithHTTPClient(hc)) }
}

// New creates a new Anthropic [Client]. The SDK's automatic retries are
// disabled: a failed call fails the stage.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
	}
	for _, o := range opts {
		o(c)
	}
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, c.reqOpts...)
	c.client = anthropic.NewClient(reqOpts...)
	return c
}

// Model returns the default model ID.
func (c *Client) Model() string { return c.model }

// Generate sends req as a single user message and returns the concatenated
// text blocks of the response.
func (c *Client) Generate(ctx context.Context, req edubridge.GenerateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	msg, err := c.client.Messages.New(ctx, c.buildParams(req))
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	text, err := extractText(msg)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	return text, nil
}

func (c *Client) buildParams(req edubridge.GenerateRequest) anthropic.MessageNewParams {
	model := req.Model
	if model == "" {
		model = c.model
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Input)),
		},
		Tools: convertTools(req.Tools),
	}
	if req.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.SystemInstruction},
		}
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}
	return params
}

// convertTools maps capabilities to Anthropic server tools. Capabilities
// this provider does not serve are skipped.
func convertTools(tools []edubridge.Tool) []anthropic.ToolUnionParam {
	var out []anthropic.ToolUnionParam
	for _, t := range tools {
		switch t.Capability {
		case edubridge.CapabilitySearch:
			out = append(out, anthropic.ToolUnionParam{
				OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{
					MaxUses: anthropic.Int(maxSearchUses),
				},
			})
		}
	}
	return out
}

// extractText concatenates text blocks. Search result and tool use blocks
// are skipped.
func extractText(msg *anthropic.Message) (string, error) {
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", edubridge.ErrEmptyResponse
	}
	return b.String(), nil
}
