package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/scoring"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := cliEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		history := e.store.History(ctx)
		var passed, best, total int
		for _, h := range history {
			if h.IsPassed {
				passed++
			}
			best = max(best, h.Score)
			total += h.Score
		}
		avg := 0
		if len(history) > 0 {
			avg = total / len(history)
		}

		fmt.Fprintln(out, "Exams")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-22s %d\n", "Taken", len(history))
		fmt.Fprintf(out, "%-22s %d (%d%%)\n", "Passed", passed, scoring.Percent(passed, len(history)))
		fmt.Fprintf(out, "%-22s %d%%\n", "Average score", avg)
		fmt.Fprintf(out, "%-22s %d%%\n", "Best score", best)
		fmt.Fprintf(out, "%-22s %d day(s)\n", "Streak", e.ctl.Achievements().CurrentStreak(ctx))

		dl := e.ctl.DiemLietStats(ctx, nil)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Practice")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-22s %d\n", "Wrong answers", len(e.store.WrongAnswerIDs(ctx)))
		fmt.Fprintf(out, "%-22s %d of %d still wrong\n", "Critical questions", dl.Wrong, dl.Total)

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Question bank (%d)\n", e.bank.Len())
		fmt.Fprintln(out, strings.Repeat("─", 40))
		counts := e.bank.CountByCategory()
		for _, c := range questionbank.AllCategories() {
			fmt.Fprintf(out, "%-22s %d\n", c.DisplayName(), counts[c])
		}
		fmt.Fprintf(out, "%-22s %d\n", "Điểm liệt", dl.Total)
		return nil
	},
}
