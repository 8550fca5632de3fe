// Package ai defines the provider-neutral text-generation surface the
// adapters talk to, and binds the configured provider behind it. Everything
// the rest of the code knows about an LLM is here: a prompt goes in, text
// comes out, capabilities vary by provider.
package ai

import "context"

// Capability names an optional provider feature.
type Capability string

const (
	// CapabilityMapsGrounding ties generated businesses to real map data.
	CapabilityMapsGrounding Capability = "maps_grounding"
	// CapabilityWebSearch lets the provider consult the live web.
	CapabilityWebSearch Capability = "web_search"
	// CapabilityJSONSchema constrains output to a JSON schema server-side.
	CapabilityJSONSchema Capability = "json_schema"
)

// Schema is a provider-neutral subset of JSON Schema, enough to describe the
// flat objects this tool asks for.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Request describes one generation call.
type Request struct {
	Prompt      string
	System      string
	MaxTokens   int64
	Temperature *float64

	// Schema constrains the output server-side where the provider supports
	// it; providers without CapabilityJSONSchema fold it into the prompt.
	Schema *Schema
	// Grounding asks the provider to verify businesses against map data.
	// Mutually exclusive with Schema on providers that support both.
	Grounding bool
	// WebSearch asks the provider to consult the live web.
	WebSearch bool
}

// Response is the provider-neutral generation result.
type Response struct {
	Text  string
	Model string
	Usage Usage
}

// Generator is the single interface the search, enrichment, and analysis
// adapters depend on.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Supports(c Capability) bool
}
