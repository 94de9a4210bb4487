package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/achievements"
	"github.com/abhisek/onthi/internal/session"
	"github.com/abhisek/onthi/internal/ui/layout"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed exams, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		clearAll, _ := cmd.Flags().GetBool("clear")
		yes, _ := cmd.Flags().GetBool("yes")
		if clearAll && !yes {
			return fmt.Errorf("refusing to clear history without --yes")
		}

		e, err := cliEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if clearAll {
			if err := e.store.ClearHistory(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Fprintln(out, "Exam history cleared.")
			return nil
		}

		entries := e.store.History(ctx)
		if len(entries) == 0 {
			fmt.Fprintln(out, "No exams yet.")
			return nil
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		fmt.Fprintf(out, "%-16s  %-18s  %6s  %-7s  %5s  %5s  %5s  %7s  %s\n",
			"Date", "Variant", "Score", "Result", "Right", "Wrong", "Skip", "Time", "Achievements")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, h := range entries {
			result := "PASS"
			if !h.IsPassed {
				result = "FAIL"
			}
			if h.HasDiemLietWrong {
				result += "*"
			}
			fmt.Fprintf(out, "%-16s  %-18s  %5d%%  %-7s  %5d  %5d  %5d  %7s  %s\n",
				h.Timestamp.Local().Format("2006-01-02 15:04"),
				session.Variant(h.Variant).DisplayName(),
				h.Score,
				result,
				h.CorrectCount,
				h.WrongCount,
				h.UnansweredCount,
				layout.FormatClock(time.Duration(h.DurationSeconds)*time.Second),
				strings.Join(achievementNames(h.Achievements), ", "),
			)
		}
		fmt.Fprintln(out, "\n* failed a critical (điểm liệt) question")
		return nil
	},
}

func achievementNames(raw []string) []string {
	ids := achievements.FromStrings(raw)
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.DisplayName()
	}
	return names
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of exams to show (0 for all)")
	historyCmd.Flags().Bool("clear", false, "Delete the exam history (requires --yes)")
	historyCmd.Flags().BoolP("yes", "y", false, "Confirm --clear")
}
