package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/config"
)

// retrier retries transient provider errors with exponential backoff
// and ±20% jitter.
type retrier struct {
	next Provider
	cfg  config.RetryConfig
	log  *zap.Logger
}

// WithRetry wraps p with retry logic.
func WithRetry(p Provider, cfg config.RetryConfig, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retrier{next: p, cfg: cfg, log: log}
}

func (r *retrier) Name() string  { return r.next.Name() }
func (r *retrier) Model() string { return r.next.Model() }

func (r *retrier) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	var (
		lastErr       error
		invalidBudget = 1
	)

	for attempt := range r.cfg.MaxAttempts {
		out, err := r.next.Complete(ctx, p)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !retryable(err, &invalidBudget) || attempt == r.cfg.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		r.log.Debug("retrying LLM call",
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

// retryable reports whether err is worth another attempt. Schema
// failures get one extra try from invalidBudget.
func retryable(err error, invalidBudget *int) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		if *invalidBudget == 0 {
			return false
		}
		*invalidBudget--
		return true
	}

	return true
}

func (r *retrier) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
