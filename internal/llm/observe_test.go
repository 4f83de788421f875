package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/prahar/internal/store"
)

type recordingSink struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingSink) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	r.events = append(r.events, d)
	return r.err
}

func TestObserver_RecordsSuccess(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := &recordingSink{}
	mock := NewMockProvider(MockReply{JSON: json.RawMessage(`{"ok":true}`), InputTokens: 10, OutputTokens: 4})
	p := WithObserver(mock, zap.New(core), sink)

	ctx := WithPurpose(context.Background(), "reading")
	_, err := p.Complete(ctx, Prompt{User: "hi"})
	require.NoError(t, err)

	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, "reading", ev.Purpose)
	assert.Equal(t, 10, ev.InputTokens)
	assert.Equal(t, 4, ev.OutputTokens)
	assert.True(t, ev.Success)

	assert.Equal(t, 1, logs.FilterMessage("LLM call").Len())
}

func TestObserver_RecordsFailureAndSurvivesSinkError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := &recordingSink{err: errors.New("disk full")}
	mock := NewMockProvider(MockReply{Err: &ErrRateLimit{Err: errors.New("slow down")}})
	p := WithObserver(mock, zap.New(core), sink)

	_, err := p.Complete(context.Background(), Prompt{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)

	require.Len(t, sink.events, 1)
	assert.False(t, sink.events[0].Success)
	assert.Equal(t, "unknown", sink.events[0].Purpose)
	assert.NotEmpty(t, sink.events[0].ErrorMessage)

	assert.Equal(t, 1, logs.FilterMessage("LLM call failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("record LLM request").Len())
}

func TestObserver_NilSink(t *testing.T) {
	mock := NewMockProvider(MockReply{JSON: json.RawMessage(`{}`)})
	p := WithObserver(mock, nil, nil)
	_, err := p.Complete(context.Background(), Prompt{})
	assert.NoError(t, err)
}

func TestObserver_ForwardsIdentity(t *testing.T) {
	p := WithObserver(NewMockProvider(), zap.NewNop(), nil)
	_, ok := p.(*observedProvider)
	require.True(t, ok)
	assert.Equal(t, "mock", p.Name())
	assert.Equal(t, "mock", p.Model())
}

func TestLookupCost(t *testing.T) {
	c, ok := LookupCost("gpt-4o-mini")
	require.True(t, ok)
	assert.InDelta(t, 0.15+0.6, c.Cost(1_000_000, 1_000_000), 1e-9)

	_, ok = LookupCost("no-such-model")
	assert.False(t, ok)
}
