package store

import (
	"context"
	"time"
)

// Result is one recorded prediction.
type Result struct {
	ID           int64
	SubmissionID string
	Prahar       int
	Confidence   float64
	Answers      []int
	CreatedAt    time.Time
}

// ResultRepo is the server-side ledger of predictions.
type ResultRepo interface {
	// Append records a prediction. CreatedAt defaults to now.
	Append(ctx context.Context, r *Result) error

	// Get returns the prediction with the given submission ID, or
	// ErrNotFound.
	Get(ctx context.Context, submissionID string) (*Result, error)

	// Distribution returns the number of results per Prahar index.
	Distribution(ctx context.Context) (map[int]int, error)

	// Recent returns up to limit results, newest first.
	Recent(ctx context.Context, limit int) ([]Result, error)

	// Count returns the number of recorded results.
	Count(ctx context.Context) (int, error)

	// Purge deletes every result and returns how many were removed.
	Purge(ctx context.Context) (int64, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request row.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// CountLLMRequests returns the number of recorded LLM calls.
	CountLLMRequests(ctx context.Context) (int, error)

	// RecentLLMRequests returns up to limit events, newest first. An
	// empty purpose matches every event.
	RecentLLMRequests(ctx context.Context, limit int, purpose string) ([]LLMRequestEvent, error)
}
