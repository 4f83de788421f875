package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prahar/internal/config"
	"github.com/abhisek/prahar/internal/prahar"
	"github.com/abhisek/prahar/internal/quiz"
	"github.com/abhisek/prahar/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLedger struct {
	mu      sync.Mutex
	results []store.Result
	err     error
}

func (f *fakeLedger) Append(_ context.Context, r *store.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.results = append(f.results, *r)
	return nil
}

type fakeNarrator struct{ text string }

func (f fakeNarrator) Narrate(context.Context, []prahar.Question, []int, prahar.Prahar) string {
	return f.text
}

func testConfig() config.ServerConfig {
	cfg := config.Default().Server
	cfg.Mode = gin.TestMode
	cfg.RateLimit.Requests = 1000
	return cfg
}

func newTestServer(t *testing.T, mutate func(*Options)) *Server {
	t.Helper()
	opts := Options{Config: testConfig(), Version: "v1.0.0"}
	if mutate != nil {
		mutate(&opts)
	}
	return New(opts)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestQuizData(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/api/quiz-data", "/quiz-data"} {
		w := do(t, s, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)

		var body struct {
			Questions []quiz.Question `json:"questions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Questions, 10)
		assert.Equal(t, prahar.Questions()[0].Question, body.Questions[0].Prompt)
		assert.Len(t, body.Questions[0].Options, 4)
	}
}

func TestPredict_Scenario(t *testing.T) {
	ledger := &fakeLedger{}
	s := newTestServer(t, func(o *Options) { o.Ledger = ledger })

	w := do(t, s, http.MethodPost, "/api/predict", `{"answers":[2,2,2,2,2,2,2,2,2,0]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res quiz.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Prahar)
	assert.Equal(t, "Tritiya Prahar (Midday Prahar)", res.Name)
	assert.Equal(t, "#CAFFBF", res.Color)
	assert.Equal(t, "midday", res.TimeOfDay)
	assert.InDelta(t, 0.5, res.Confidence, 1e-9)
	assert.Equal(t, 5, res.Counts["Tritiya Prahar (Midday Prahar)"])
	assert.Empty(t, res.Reading)
	assert.NotContains(t, w.Body.String(), `"reading"`)

	id := w.Header().Get(submissionHeader)
	require.NotEmpty(t, id)
	require.Len(t, ledger.results, 1)
	assert.Equal(t, id, ledger.results[0].SubmissionID)
	assert.Equal(t, 3, ledger.results[0].Prahar)
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 0}, ledger.results[0].Answers)
}

func TestPredict_LegacyRouteAndReading(t *testing.T) {
	s := newTestServer(t, func(o *Options) { o.Narrator = fakeNarrator{text: "Noon suits you."} })

	w := do(t, s, http.MethodPost, "/predict", `{"answers":[0,0,0,0,0,0,0,0,0,0]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res quiz.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Prahar)
	assert.Equal(t, "Noon suits you.", res.Reading)
}

func TestPredict_LedgerFailureStillSucceeds(t *testing.T) {
	s := newTestServer(t, func(o *Options) { o.Ledger = &fakeLedger{err: errors.New("disk full")} })

	w := do(t, s, http.MethodPost, "/api/predict", `{"answers":[1,1,1,1,1,1,1,1,1,1]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(submissionHeader))
}

func TestPredict_InvalidInput(t *testing.T) {
	s := newTestServer(t, nil)

	tests := map[string]string{
		"nine answers": `{"answers":[0,0,0,0,0,0,0,0,0]}`,
		"eleven":       `{"answers":[0,0,0,0,0,0,0,0,0,0,0]}`,
		"out of range": `{"answers":[0,0,0,0,0,0,0,0,0,4]}`,
		"negative":     `{"answers":[0,0,0,0,0,0,0,0,0,-1]}`,
		"missing":      `{}`,
		"not json":     `answers`,
		"wrong type":   `{"answers":"all"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/predict", body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"`+msgInvalidInput+`"}`, w.Body.String())
		})
	}
}

func TestLegacyRedirects(t *testing.T) {
	s := newTestServer(t, nil)
	for _, path := range []string{"/index", "/index.html", "/home"} {
		w := do(t, s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Prahar Personality Quiz")
	assert.Contains(t, w.Body.String(), "prahar v1.0.0")
	assert.Equal(t, 10+40, strings.Count(w.Body.String(), "<li>"), "ten questions with four options each")
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"404 - Page Not Found"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "v1.0.0", body["version"])
	assert.Contains(t, w.Header(), "X-Content-Type-Options")
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, nil)
	do(t, s, http.MethodPost, "/api/predict", `{"answers":[2,2,2,2,2,2,2,2,2,0]}`)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{endpoint="/api/predict",method="POST",status="200"} 1`)
	assert.Contains(t, body, `prahar_predictions_total{time_of_day="midday"} 1`)
	assert.Contains(t, body, "http_request_duration_seconds_bucket")
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(o *Options) {
		o.Config.RateLimit.Requests = 2
		o.Config.RateLimit.Window = time.Hour
	})

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/health", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, s, http.MethodGet, "/api/health", "").Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/predict", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSConfig_Wildcard(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
	cfg := corsConfig([]string{"http://a.example"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"http://a.example"}, cfg.AllowOrigins)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Addr = "127.0.0.1:0"
	s := New(Options{Config: cfg})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
