package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is one scripted answer for MockProvider.
type MockReply struct {
	JSON         json.RawMessage
	InputTokens  int
	OutputTokens int
	Err          error
}

// MockProvider replays scripted replies in order and records prompts.
// When the script runs out it serves Fallback, or fails with
// ErrProviderUnavailable if Fallback is nil.
type MockProvider struct {
	mu       sync.Mutex
	script   []MockReply
	prompts  []Prompt
	Fallback func(Prompt) MockReply
}

// NewMockProvider returns a MockProvider with the given script.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{script: replies}
}

func (m *MockProvider) Name() string  { return "mock" }
func (m *MockProvider) Model() string { return "mock" }

func (m *MockProvider) Complete(_ context.Context, p Prompt) (*Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, p)

	var r MockReply
	switch {
	case len(m.script) > 0:
		r = m.script[0]
		m.script = m.script[1:]
	case m.Fallback != nil:
		r = m.Fallback(p)
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if r.Err != nil {
		return nil, r.Err
	}
	if err := Validate(p.Schema, r.JSON); err != nil {
		return nil, err
	}
	return &Completion{
		JSON:         r.JSON,
		Model:        "mock",
		InputTokens:  r.InputTokens,
		OutputTokens: r.OutputTokens,
	}, nil
}

// Push appends a reply to the script.
func (m *MockProvider) Push(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r)
}

// Calls returns the number of Complete calls so far.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// LastPrompt returns the most recent prompt, or the zero Prompt.
func (m *MockProvider) LastPrompt() Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return Prompt{}
	}
	return m.prompts[len(m.prompts)-1]
}
