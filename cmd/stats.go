package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prahar/internal/prahar"
	"github.com/abhisek/prahar/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the distribution of recorded results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		id, _ := cmd.Flags().GetString("id")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		if id != "" {
			return showResult(cmd.Context(), out, st.Results(), id)
		}
		return showStats(cmd.Context(), out, st.Results(), st.Events(), limit)
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent results to show")
	statsCmd.Flags().String("id", "", "Show a single result by submission ID")
}

func praharName(index int) string {
	if p, ok := prahar.ByIndex(index); ok {
		return p.Name
	}
	return fmt.Sprintf("#%d", index)
}

// showResult prints one recorded prediction.
func showResult(ctx context.Context, w io.Writer, results store.ResultRepo, id string) error {
	r, err := results.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no result with submission ID %q", id)
	}
	if err != nil {
		return fmt.Errorf("load result: %w", err)
	}

	answers := make([]string, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = string(rune('a' + a))
	}

	fmt.Fprintf(w, "Submission: %s\n", r.SubmissionID)
	fmt.Fprintf(w, "Prahar:     %s\n", praharName(r.Prahar))
	fmt.Fprintf(w, "Confidence: %.0f%%\n", r.Confidence*100)
	fmt.Fprintf(w, "Answers:    %s\n", strings.Join(answers, " "))
	fmt.Fprintf(w, "Recorded:   %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func showStats(ctx context.Context, w io.Writer, results store.ResultRepo, events store.EventRepo, limit int) error {
	total, err := results.Count(ctx)
	if err != nil {
		return fmt.Errorf("count results: %w", err)
	}
	calls, err := events.CountLLMRequests(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Fprintln(w, "No results recorded yet.")
		return nil
	}

	dist, err := results.Distribution(ctx)
	if err != nil {
		return fmt.Errorf("load distribution: %w", err)
	}

	fmt.Fprintf(w, "%d results, %d narrator LLM calls\n\n", total, calls)
	for _, p := range prahar.All() {
		n := dist[p.Index]
		fmt.Fprintf(w, "%-36s  %4d  %s\n", p.Name, n, bar(n, total, 30))
	}

	recent, err := results.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("load recent results: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-36s  %-36s  %-19s  %s\n", "Submission", "Prahar", "Time", "Conf")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, r := range recent {
		fmt.Fprintf(w, "%-36s  %-36s  %-19s  %3.0f%%\n",
			r.SubmissionID,
			praharName(r.Prahar),
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Confidence*100,
		)
	}
	return nil
}

// bar renders n/total as a row of block characters width wide.
func bar(n, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := n * width / total
	if n > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled)
}
