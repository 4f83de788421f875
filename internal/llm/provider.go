// Package llm talks to hosted language models behind one small interface.
//
// Providers are composed as decorators: caller → retry → observe → SDK.
// Every SDK provider validates structured output against the prompt's
// JSON Schema before returning it.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion for a prompt.
type Provider interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// Name is the provider family ("anthropic", "openai", ...).
	Name() string

	// Model is the resolved model ID requests are sent to.
	Model() string
}

// Prompt is a single-turn request.
type Prompt struct {
	System string
	User   string

	// Schema, when set, asks for a JSON object conforming to it. The
	// completion's JSON field then holds the validated object.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Completion is a provider's answer to a Prompt.
type Completion struct {
	// JSON is the validated object when the prompt carried a schema,
	// otherwise the raw text.
	JSON json.RawMessage

	Model        string
	InputTokens  int
	OutputTokens int

	// Truncated reports that generation stopped at MaxTokens.
	Truncated bool
}

// Schema describes the JSON object a prompt expects back.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "prahar-reading".
	Name        string
	Description string
	Definition  map[string]any
}

// Decode unmarshals the completion's JSON into v.
func (c *Completion) Decode(v any) error {
	if err := json.Unmarshal(c.JSON, v); err != nil {
		return &ErrInvalidResponse{Content: c.JSON, Err: err}
	}
	return nil
}
