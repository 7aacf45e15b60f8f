// Package gemini implements [edubridge.Generator] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating a single-turn
// [edubridge.GenerateRequest] into a GenerateContent call and the response
// back into plain text. The search capability maps to Gemini's built-in
// Google Search grounding tool.
package gemini

import "github.com/fwojciec/edubridge"

const defaultModel = "gemini-2.5-flash"

// SearchToolName is the provider-side name of the search tool.
const SearchToolName = "google_search"

// Tools returns the capabilities this provider can serve.
func Tools() []edubridge.Tool {
	return []edubridge.Tool{{
		Capability:  edubridge.CapabilitySearch,
		Name:        SearchToolName,
		Description: "Grounds responses with Google Search results.",
	}}
}
