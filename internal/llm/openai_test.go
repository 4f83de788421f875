package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prahar/internal/config"
)

func chatServer(t *testing.T, status int, content, finish string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var seen map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&seen)
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "nope", "type": "server_error"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestOpenAIProvider_StructuredOutput(t *testing.T) {
	srv, seen := chatServer(t, http.StatusOK, `{"reading":"You glow at dusk."}`, "stop")
	p, err := NewOpenAIProvider(config.ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), Prompt{
		System:    "You are an astrologer.",
		User:      "Answers: A B C",
		Schema:    readingSchema(),
		MaxTokens: 200,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reading":"You glow at dusk."}`, string(out.JSON))
	assert.Equal(t, 40, out.InputTokens)
	assert.Equal(t, 25, out.OutputTokens)

	rf, ok := (*seen)["response_format"].(map[string]any)
	require.True(t, ok, "response_format sent")
	assert.Equal(t, "json_schema", rf["type"])
	msgs := (*seen)["messages"].([]any)
	assert.Len(t, msgs, 2)
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, `{"other":1}`, "stop")
	p, err := NewOpenAIProvider(config.ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Prompt{User: "x", Schema: readingSchema()})
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv), "got %v", err)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, `{"reading":"You gl`, "length")
	p, err := NewOpenAIProvider(config.ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Prompt{User: "x", Schema: readingSchema()})
	var mt *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &mt), "got %v", err)
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusBadGateway, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		srv, _ := chatServer(t, tt.status, "", "")
		p, err := NewOpenAIProvider(config.ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
		require.NoError(t, err)

		_, err = p.Complete(context.Background(), Prompt{User: "x"})
		assert.True(t, tt.check(err), "status %d: got %v", tt.status, err)
	}
}

func TestOpenAIProvider_PlainText(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, "just words", "stop")
	p, err := NewOpenAIProvider(config.ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), Prompt{User: "x"})
	require.NoError(t, err)
	var s string
	require.NoError(t, out.Decode(&s))
	assert.Equal(t, "just words", s)
}

func TestOpenRouterProvider_Defaults(t *testing.T) {
	p, err := NewOpenRouterProvider(config.ProviderConfig{APIKey: "k", Model: "google/gemini-2.0-flash-exp"})
	require.NoError(t, err)
	assert.Equal(t, "openrouter", p.Name())
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.Model())

	_, err = NewOpenRouterProvider(config.ProviderConfig{})
	assert.Error(t, err)
}
