package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const llmRequestsTable = "llm_requests"

// eventRepo implements EventRepo over the llm_requests table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := builder().Insert(llmRequestsTable).
		Columns("provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "created_at").
		Values(data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, time.Now().UnixMilli()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) CountLLMRequests(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(llmRequestsTable)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count LLM requests: %w", err)
	}
	return n, nil
}

func (r *eventRepo) RecentLLMRequests(ctx context.Context, limit int, purpose string) ([]LLMRequestEvent, error) {
	t := entsql.Table(llmRequestsTable)
	sel := builder().
		Select(
			t.C("id"), t.C("provider"), t.C("model"), t.C("purpose"),
			t.C("input_tokens"), t.C("output_tokens"), t.C("latency_ms"),
			t.C("success"), t.C("error_message"), t.C("created_at"),
		).
		From(t).
		OrderBy(entsql.Desc(t.C("id")))
	if purpose != "" {
		sel = sel.Where(entsql.EQ(t.C("purpose"), purpose))
	}
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var (
			e         LLMRequestEvent
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs,
			&e.Success, &e.ErrorMessage, &createdAt); err != nil {
			return nil, fmt.Errorf("scan LLM request: %w", err)
		}
		e.Timestamp = time.UnixMilli(createdAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM requests: %w", err)
	}
	return out, nil
}
