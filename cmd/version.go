package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/abhisek/prahar/internal/api"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("prahar", version)

		if check, _ := cmd.Flags().GetBool("server"); !check {
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
		defer cancel()

		health, err := api.New(cfg.API.BaseURL, cfg.API.Timeout, zap.NewNop()).Health(ctx)
		if err != nil {
			return fmt.Errorf("query server: %w", err)
		}
		fmt.Printf("server %s (%s)\n", health.Version, cfg.API.BaseURL)

		if msg := compatibility(version, health.Version); msg != "" {
			fmt.Println(msg)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("server", false, "Also query the scoring service's version")
}

// canonical turns "1.2.3" into "v1.2.3". It returns "" for anything that
// is not a semantic version.
func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// compatibility returns a warning when client and server major versions
// differ, or "" when they match or cannot be compared.
func compatibility(client, server string) string {
	c, s := canonical(client), canonical(server)
	if c == "" || s == "" {
		return ""
	}
	if semver.Major(c) != semver.Major(s) {
		return fmt.Sprintf("warning: client %s and server %s have different major versions; the API may be incompatible", c, s)
	}
	return ""
}
