package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const resultsTable = "results"

// resultRepo implements ResultRepo with ent's SQL builder over database/sql.
type resultRepo struct {
	db *sql.DB
}

func (r *resultRepo) Append(ctx context.Context, res *Result) error {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}

	query, args := builder().Insert(resultsTable).
		Columns("submission_id", "prahar", "confidence", "answers_json", "created_at").
		Values(res.SubmissionID, res.Prahar, res.Confidence, string(answers), res.CreatedAt.UnixMilli()).
		Query()

	out, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	if id, err := out.LastInsertId(); err == nil {
		res.ID = id
	}
	return nil
}

func (r *resultRepo) Get(ctx context.Context, submissionID string) (*Result, error) {
	query, args := selectResults().
		Where(entsql.EQ("submission_id", submissionID)).
		Limit(1).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query result: %w", err)
	}
	defer rows.Close()

	results, err := scanResults(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return &results[0], nil
}

func (r *resultRepo) Distribution(ctx context.Context) (map[int]int, error) {
	query, args := builder().
		Select("prahar", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(resultsTable)).
		GroupBy("prahar").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query distribution: %w", err)
	}
	defer rows.Close()

	dist := make(map[int]int)
	for rows.Next() {
		var prahar, n int
		if err := rows.Scan(&prahar, &n); err != nil {
			return nil, fmt.Errorf("scan distribution: %w", err)
		}
		dist[prahar] = n
	}
	return dist, rows.Err()
}

func (r *resultRepo) Recent(ctx context.Context, limit int) ([]Result, error) {
	sel := selectResults().OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent results: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

func (r *resultRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(resultsTable)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

func (r *resultRepo) Purge(ctx context.Context) (int64, error) {
	query, args := builder().Delete(resultsTable).Query()

	out, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge results: %w", err)
	}
	return out.RowsAffected()
}

func selectResults() *entsql.Selector {
	return builder().
		Select("id", "submission_id", "prahar", "confidence", "answers_json", "created_at").
		From(entsql.Table(resultsTable))
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var out []Result
	for rows.Next() {
		var (
			res     Result
			answers string
			created int64
		)
		if err := rows.Scan(&res.ID, &res.SubmissionID, &res.Prahar, &res.Confidence, &answers, &created); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &res.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers for %s: %w", res.SubmissionID, err)
		}
		res.CreatedAt = time.UnixMilli(created)
		out = append(out, res)
	}
	return out, rows.Err()
}
