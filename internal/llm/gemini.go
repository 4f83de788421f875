package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/abhisek/prahar/internal/config"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider implements Provider with the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider builds a provider from cfg.
func NewGeminiProvider(ctx context.Context, cfg config.ProviderConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (g *GeminiProvider) Name() string  { return "gemini" }
func (g *GeminiProvider) Model() string { return g.model }

func (g *GeminiProvider) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	gc := &genai.GenerateContentConfig{MaxOutputTokens: int32(p.MaxTokens)}
	if p.Temperature > 0 {
		t := float32(p.Temperature)
		gc.Temperature = &t
	}
	if p.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	if p.Schema != nil {
		gc.ResponseMIMEType = "application/json"
		gc.ResponseSchema = toGeminiSchema(p.Schema.Definition)
	}

	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.User), gc)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	c := &Completion{
		JSON:  json.RawMessage(res.Text()),
		Model: g.model,
	}
	if len(res.Candidates) > 0 {
		c.Truncated = res.Candidates[0].FinishReason == genai.FinishReasonMaxTokens
	}
	if u := res.UsageMetadata; u != nil {
		c.InputTokens = int(u.PromptTokenCount)
		c.OutputTokens = int(u.CandidatesTokenCount)
	}
	return finish(p, c)
}

// toGeminiSchema converts the subset of JSON Schema our prompts use.
func toGeminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}
	if t, ok := def["type"].(string); ok {
		s.Type = geminiTypes[t]
	}
	if d, ok := def["description"].(string); ok {
		s.Description = d
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				s.Properties[name] = toGeminiSchema(sub)
			}
		}
	}
	s.Required = stringList(def["required"])
	s.Enum = stringList(def["enum"])
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = toGeminiSchema(items)
	}
	return s
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

func stringList(v any) []string {
	var out []string
	switch xs := v.(type) {
	case []string:
		out = append(out, xs...)
	case []any:
		for _, x := range xs {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
