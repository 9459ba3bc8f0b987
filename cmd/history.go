package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.ResultRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No quiz results yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-16s  %-20s  %7s  %7s  %6s\n",
			"ID", "Finished", "Player", "Bank", "Correct", "Skipped", "Score")
		fmt.Fprintln(out, strings.Repeat("─", 92))

		for _, r := range results {
			fmt.Fprintf(out, "%-5d  %-19s  %-16s  %-20s  %7s  %7d  %5.1f%%\n",
				r.ID,
				r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(r.PlayerName, 16),
				truncate(filepath.Base(r.BankPath), 20),
				fmt.Sprintf("%d/%d", r.Correct, r.Total),
				r.Unanswered,
				r.Percentage,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
}
