// Package server is the HTTP scoring backend behind `prahar serve`.
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/classifier"
	"github.com/abhisek/prahar/internal/config"
	"github.com/abhisek/prahar/internal/prahar"
	"github.com/abhisek/prahar/internal/store"
)

// Ledger records predictions. store.ResultRepo satisfies it.
type Ledger interface {
	Append(ctx context.Context, r *store.Result) error
}

// Narrator writes an optional reading for a prediction. It returns ""
// when it has nothing to say.
type Narrator interface {
	Narrate(ctx context.Context, questions []prahar.Question, answers []int, winner prahar.Prahar) string
}

// Options wires a Server. Only Config is required.
type Options struct {
	Config     config.ServerConfig
	Version    string
	Logger     *zap.Logger
	Classifier classifier.Classifier
	Ledger     Ledger
	Narrator   Narrator
}

// Server serves the quiz API.
type Server struct {
	cfg        config.ServerConfig
	version    string
	log        *zap.Logger
	classifier classifier.Classifier
	ledger     Ledger
	narrator   Narrator
	metrics    *metrics
	engine     *gin.Engine
	started    time.Time
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	s := &Server{
		cfg:        opts.Config,
		version:    opts.Version,
		log:        opts.Logger,
		classifier: opts.Classifier,
		ledger:     opts.Ledger,
		narrator:   opts.Narrator,
		metrics:    newMetrics(),
		started:    time.Now(),
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.classifier == nil {
		s.classifier = classifier.RuleBased{}
	}
	if s.version == "" {
		s.version = "dev"
	}

	if s.cfg.Mode != "" {
		gin.SetMode(s.cfg.Mode)
	}
	s.engine = gin.New()
	s.engine.SetHTMLTemplate(template.Must(template.New("index").Parse(indexHTML)))
	s.setupMiddlewares()
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupMiddlewares() {
	s.engine.Use(recovery(s.log))
	s.engine.Use(requestLogger(s.log))
	s.engine.Use(s.metrics.middleware())
	s.engine.Use(secure())
	s.engine.Use(cors.New(corsConfig(s.cfg.CORSOrigins)))
	if rl := s.cfg.RateLimit; rl.Requests > 0 && rl.Window > 0 {
		s.engine.Use(newRateLimiter(rl.Requests, rl.Window).middleware())
	}
}

// corsConfig allows the listed origins. An empty list or "*" allows any.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{submissionHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

func (s *Server) setupRoutes() {
	r := s.engine

	r.GET("/", s.index)
	for _, legacy := range []string{"/index", "/index.html", "/home"} {
		r.GET(legacy, redirectHome)
	}

	r.GET("/quiz-data", s.quizData)
	r.POST("/predict", s.predict)

	api := r.Group("/api")
	{
		api.GET("/quiz-data", s.quizData)
		api.POST("/predict", s.predict)
		api.GET("/health", s.health)
	}

	r.GET("/metrics", s.metrics.handler())
	r.NoRoute(notFound)
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.cfg.Addr), zap.String("version", s.version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
