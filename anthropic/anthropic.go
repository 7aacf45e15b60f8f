// Package anthropic implements [edubridge.Generator] for the Anthropic
// Messages API.
//
// It wraps github.com/anthropics/anthropic-sdk-go. Each request is a single
// non-streaming Messages call; the search capability maps to Anthropic's
// server-side web search tool.
package anthropic

import "github.com/fwojciec/edubridge"

const (
	defaultModel     = "claude-sonnet-4-5-20250929"
	defaultMaxTokens = 8192
	maxSearchUses    = 5
)

// SearchToolName is the provider-side name of the search tool.
const SearchToolName = "web_search"

// Tools returns the capabilities this provider can serve.
func Tools() []edubridge.Tool {
	return []edubridge.Tool{{
		Capability:  edubridge.CapabilitySearch,
		Name:        SearchToolName,
		Description: "Searches the web and cites sources in the response.",
	}}
}
