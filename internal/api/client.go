// Package api is the HTTP client for the Prahar scoring backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/quiz"
)

// Endpoint paths relative to the base URL.
const (
	PathQuestions = "/api/quiz-data"
	PathPredict   = "/api/predict"
	PathHealth    = "/api/health"
)

// maxBody caps how much of a response body is read.
const maxBody = 1 << 20

// ErrInvalidPayload wraps responses that fail to decode or validate.
var ErrInvalidPayload = errors.New("invalid response payload")

// ErrStatus is a non-2xx response.
type ErrStatus struct {
	Code int
	Body string
}

func (e *ErrStatus) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Code, e.Body)
}

// Health is the backend's /api/health body.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Client talks to one backend. Each call is a single attempt bounded by
// the client timeout and the caller's context.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New returns a Client for baseURL. A zero timeout leaves requests
// bounded only by their context.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchQuestions loads the question set.
func (c *Client) FetchQuestions(ctx context.Context) ([]quiz.Question, error) {
	raw, err := c.do(ctx, http.MethodGet, PathQuestions, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	if err := validate(questionsSchema, raw); err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}

	var body struct {
		Questions []quiz.Question `json:"questions"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("fetch questions: %w: %v", ErrInvalidPayload, err)
	}
	c.log.Debug("questions loaded", zap.Int("count", len(body.Questions)))
	return body.Questions, nil
}

// Submit posts a complete answer set and returns the classification.
func (c *Client) Submit(ctx context.Context, answers quiz.Answers) (*quiz.Result, error) {
	payload, err := json.Marshal(struct {
		Answers []int `json:"answers"`
	}{Answers: answers})
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, PathPredict, payload)
	if err != nil {
		return nil, fmt.Errorf("submit answers: %w", err)
	}
	if err := validate(resultSchema, raw); err != nil {
		return nil, fmt.Errorf("submit answers: %w", err)
	}

	var res quiz.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("submit answers: %w: %v", ErrInvalidPayload, err)
	}
	c.log.Debug("prediction received",
		zap.Int("prahar", res.Prahar),
		zap.Float64("confidence", res.Confidence))
	return &res, nil
}

// Health reports the backend's status and version.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	raw, err := c.do(ctx, http.MethodGet, PathHealth, nil)
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	var h Health
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("health: %w: %v", ErrInvalidPayload, err)
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	c.log.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ErrStatus{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}
