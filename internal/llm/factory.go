package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/config"
)

// New builds the configured provider wrapped as retry → observe → SDK.
// It returns ErrNotConfigured when cfg.Provider is empty. The "mock"
// provider is returned unwrapped so tests can script it.
func New(ctx context.Context, cfg config.LLMConfig, log *zap.Logger, sink EventSink) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.Provider {
	case "":
		return nil, ErrNotConfigured
	case "mock":
		return NewMockProvider(), nil
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithObserver(base, log, sink), cfg.Retry, log), nil
}
