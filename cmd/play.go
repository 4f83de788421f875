package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prahar/internal/api"
	"github.com/abhisek/prahar/internal/app"
	"github.com/abhisek/prahar/internal/logging"
)

var playCmd = &cobra.Command{
	Use:     "play",
	Aliases: []string{"quiz"},
	Short:   "Take the personality quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay launches the quiz UI against the configured scoring service.
func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs only go to the file.
	log, err := logging.New(logging.FromConfig(cfg.Log, false))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, log)
	return app.Run(cmd.Context(), client, log)
}
