package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/store"
)

// EventSink persists one row per LLM call. store.EventRepo satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// observedProvider logs every call and records it to an EventSink.
type observedProvider struct {
	next Provider
	log  *zap.Logger
	sink EventSink
}

// WithObserver wraps p so every call is logged and, when sink is
// non-nil, recorded.
func WithObserver(p Provider, log *zap.Logger, sink EventSink) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &observedProvider{next: p, log: log, sink: sink}
}

func (o *observedProvider) Name() string  { return o.next.Name() }
func (o *observedProvider) Model() string { return o.next.Model() }

func (o *observedProvider) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()
	out, err := o.next.Complete(ctx, p)
	elapsed := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:  o.next.Name(),
		Model:     o.next.Model(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: elapsed.Milliseconds(),
		Success:   err == nil,
	}
	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("purpose", ev.Purpose),
		zap.Duration("latency", elapsed),
	}

	if out != nil {
		if out.Model != "" {
			ev.Model = out.Model
		}
		ev.InputTokens = out.InputTokens
		ev.OutputTokens = out.OutputTokens
		fields = append(fields,
			zap.Int("input_tokens", out.InputTokens),
			zap.Int("output_tokens", out.OutputTokens))
		if c, ok := LookupCost(ev.Model); ok {
			fields = append(fields, zap.Float64("cost_usd", c.Cost(out.InputTokens, out.OutputTokens)))
		}
	}
	fields = append(fields, zap.String("model", ev.Model))

	if err != nil {
		ev.ErrorMessage = err.Error()
		o.log.Warn("LLM call failed", append(fields, zap.Error(err))...)
	} else {
		o.log.Info("LLM call", fields...)
	}

	if o.sink != nil {
		if serr := o.sink.AppendLLMRequest(ctx, ev); serr != nil {
			o.log.Warn("record LLM request", zap.Error(serr))
		}
	}

	return out, err
}
