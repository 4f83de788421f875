package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/abhisek/prahar/internal/config"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenAIProvider implements Provider with the Chat Completions API. It
// also serves OpenRouter, which speaks the same protocol.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	model  string
}

// NewOpenAIProvider builds a provider for api.openai.com or, when
// cfg.BaseURL is set, any compatible endpoint.
func NewOpenAIProvider(cfg config.ProviderConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	return newChatProvider("openai", cfg), nil
}

// NewOpenRouterProvider builds an OpenAIProvider aimed at OpenRouter.
func NewOpenRouterProvider(cfg config.ProviderConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	return newChatProvider("openrouter", cfg), nil
}

func newChatProvider(name string, cfg config.ProviderConfig) *OpenAIProvider {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(oc),
		name:   name,
		model:  cfg.Model,
	}
}

func (o *OpenAIProvider) Name() string  { return o.name }
func (o *OpenAIProvider) Model() string { return o.model }

func (o *OpenAIProvider) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:               o.model,
		MaxCompletionTokens: p.MaxTokens,
		Temperature:         float32(p.Temperature),
	}
	if p.System != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.System,
		})
	}
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: p.User,
	})

	if p.Schema != nil {
		def, err := json.Marshal(p.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        p.Schema.Name,
				Description: p.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(apiErr.HTTPStatusCode, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no choices in OpenAI response")}
	}

	choice := resp.Choices[0]
	return finish(p, &Completion{
		JSON:         json.RawMessage(choice.Message.Content),
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		Truncated:    choice.FinishReason == openai.FinishReasonLength,
	})
}
