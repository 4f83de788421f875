package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/classifier"
	"github.com/abhisek/prahar/internal/config"
	"github.com/abhisek/prahar/internal/llm"
	"github.com/abhisek/prahar/internal/logging"
	"github.com/abhisek/prahar/internal/reading"
	"github.com/abhisek/prahar/internal/server"
	"github.com/abhisek/prahar/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scoring service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
			cfg.Server.Mode = mode
		}

		log, err := logging.New(logging.FromConfig(cfg.Log, true))
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// The narrator is optional; predictions work without it.
		narrator, err := buildNarrator(ctx, cfg.LLM, log, st.Events())
		if err != nil {
			log.Warn("narrator disabled", zap.Error(err))
		}

		srv := server.New(server.Options{
			Config:     cfg.Server,
			Version:    version,
			Logger:     log,
			Classifier: classifier.RuleBased{},
			Ledger:     st.Results(),
			Narrator:   narrator,
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().String("mode", "", "Gin mode: debug, release or test")
}

// buildNarrator returns a nil Narrator when no provider is configured.
func buildNarrator(ctx context.Context, cfg config.LLMConfig, log *zap.Logger, sink llm.EventSink) (server.Narrator, error) {
	provider, err := llm.New(ctx, cfg, log, sink)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, nil
		}
		return nil, err
	}

	if m, ok := provider.(*llm.MockProvider); ok {
		m.Fallback = reading.MockReply
		provider = llm.WithObserver(m, log, sink)
	}

	log.Info("narrator enabled", zap.String("provider", provider.Name()), zap.String("model", provider.Model()))
	return reading.New(provider, cfg.Timeout, log), nil
}
