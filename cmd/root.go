package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prahar/internal/config"
	"github.com/abhisek/prahar/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "prahar",
	Short: "Find the Prahar of the day that matches your personality",
	Long: "Prahar — a ten-question personality quiz that maps your answers to one of the\n" +
		"eight Prahars, the traditional three-hour segments of the day.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a prahar.yaml config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PRAHAR_DB env var)")
	rootCmd.PersistentFlags().String("api", "", "Base URL of the scoring service (overrides api.base_url)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies flags,
// which take precedence over both.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB.Path = p
	}
	if u, _ := cmd.Flags().GetString("api"); u != "" {
		cfg.API.BaseURL = u
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db / db.path (highest
// priority), then PRAHAR_DB env var, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

// openStore loads config and opens the result ledger.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
