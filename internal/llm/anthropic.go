package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/abhisek/prahar/internal/config"
)

var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicProvider implements Provider with the Anthropic Messages API.
// Schemas are sent as an instruction in the system prompt and the reply
// is validated locally.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider builds a provider from cfg. SDK-level retries are
// disabled because WithRetry owns that concern.
func NewAnthropicProvider(cfg config.ProviderConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  resolveModel(cfg.Model, anthropicModels),
	}, nil
}

func (a *AnthropicProvider) Name() string  { return "anthropic" }
func (a *AnthropicProvider) Model() string { return a.model }

func (a *AnthropicProvider) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	system, err := systemWithSchema(p)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(p.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if p.Temperature > 0 {
		params.Temperature = anthropic.Float(p.Temperature)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(apiErr.StatusCode, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, &ErrInvalidResponse{Err: errors.New("no text content in Anthropic response")}
	}

	return finish(p, &Completion{
		JSON:         json.RawMessage(stripFence(text)),
		Model:        string(msg.Model),
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
		Truncated:    msg.StopReason == anthropic.StopReasonMaxTokens,
	})
}

// systemWithSchema appends a JSON-only instruction carrying the schema
// for providers without a native structured-output switch.
func systemWithSchema(p Prompt) (string, error) {
	if p.Schema == nil {
		return p.System, nil
	}
	def, err := json.Marshal(p.Schema.Definition)
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	var b strings.Builder
	if p.System != "" {
		b.WriteString(p.System)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Respond with a single JSON object and nothing else. It must match this JSON Schema (%s):\n%s",
		p.Schema.Name, def)
	return b.String(), nil
}

// stripFence removes a ```json ... ``` wrapper some models add.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// finish applies the checks shared by every SDK provider.
func finish(p Prompt, c *Completion) (*Completion, error) {
	if p.Schema == nil {
		raw, err := json.Marshal(string(c.JSON))
		if err != nil {
			return nil, err
		}
		c.JSON = raw
		return c, nil
	}
	if c.Truncated {
		return nil, &ErrMaxTokensExceeded{Content: c.JSON}
	}
	if err := Validate(p.Schema, c.JSON); err != nil {
		return nil, err
	}
	return c, nil
}

// resolveModel maps a friendly name to a provider ID. Unknown names are
// passed through so full model IDs work too.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
