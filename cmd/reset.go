package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every recorded result",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		n, err := st.Results().Count(ctx)
		if err != nil {
			return fmt.Errorf("count results: %w", err)
		}
		if n == 0 {
			fmt.Println("Nothing to delete.")
			return nil
		}

		if !yes {
			fmt.Printf("Delete %d recorded results? [y/N] ", n)
			if !confirm(bufio.NewReader(os.Stdin)) {
				fmt.Println("Aborted.")
				return nil
			}
		}

		deleted, err := st.Results().Purge(ctx)
		if err != nil {
			return fmt.Errorf("purge results: %w", err)
		}
		fmt.Printf("Deleted %d results.\n", deleted)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func confirm(r *bufio.Reader) bool {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
