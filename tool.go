package edubridge

import (
	"fmt"
	"sort"
	"strings"
)

// Capability is a token naming an external tool a stage may use.
type Capability string

const (
	// CapabilitySearch grants the model access to web search.
	CapabilitySearch Capability = "search"
)

// Tool is a named external-tool adapter that serves one Capability.
// Providers translate Tools into their native tool declarations.
type Tool struct {
	Capability  Capability
	Name        string
	Description string
}

// Registry maps capability tokens to the tool adapters that serve them.
// A Registry is populated once, before any stage is constructed.
type Registry struct {
	tools map[Capability]Tool
}

// NewRegistry returns a Registry holding tools. A later tool replaces an
// earlier one with the same capability.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[Capability]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.Capability] = t
	}
	return r
}

// Lookup returns the tool registered for c.
func (r *Registry) Lookup(c Capability) (Tool, bool) {
	if r == nil {
		return Tool{}, false
	}
	t, ok := r.tools[c]
	return t, ok
}

// Resolve maps capabilities to tools, preserving order. It fails on the
// first capability with no registered tool.
func (r *Registry) Resolve(caps []Capability) ([]Tool, error) {
	if len(caps) == 0 {
		return nil, nil
	}
	tools := make([]Tool, 0, len(caps))
	for _, c := range caps {
		t, ok := r.Lookup(c)
		if !ok {
			return nil, fmt.Errorf("%q (registered: %s): %w", c, r.names(), ErrUnknownCapability)
		}
		tools = append(tools, t)
	}
	return tools, nil
}

func (r *Registry) names() string {
	if r == nil || len(r.tools) == 0 {
		return "none"
	}
	names := make([]string, 0, len(r.tools))
	for c := range r.tools {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
