package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/questionbank"
)

var wrongCmd = &cobra.Command{
	Use:   "wrong",
	Short: "List questions answered wrong most recently",
	RunE: func(cmd *cobra.Command, args []string) error {
		clearAll, _ := cmd.Flags().GetBool("clear")
		yes, _ := cmd.Flags().GetBool("yes")
		if clearAll && !yes {
			return fmt.Errorf("refusing to clear wrong answers without --yes")
		}

		e, err := cliEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if clearAll {
			if err := e.store.ClearWrongAnswers(ctx); err != nil {
				return fmt.Errorf("clear wrong answers: %w", err)
			}
			fmt.Fprintln(out, "Wrong answers cleared.")
			return nil
		}

		recs := e.store.WrongAnswers(ctx)
		if len(recs) == 0 {
			fmt.Fprintln(out, "No wrong answers recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-6s  %-6s  %-16s  %s\n", "ID", "Chosen", "Answer", "When", "Question")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, r := range recs {
			text := "(not in bank)"
			if q, ok := e.bank.Get(r.QuestionID); ok {
				text = truncate(q.Text, 60)
				if q.IsCritical {
					text = "[điểm liệt] " + text
				}
			}
			fmt.Fprintf(out, "%-5d  %-6s  %-6s  %-16s  %s\n",
				r.QuestionID,
				questionbank.OptionLabel(r.SelectedAnswer),
				questionbank.OptionLabel(r.CorrectAnswer),
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				text,
			)
		}
		fmt.Fprintf(out, "\n%d questions. Practice them with: onthi practice --mode wrong\n", len(recs))
		return nil
	},
}

// truncate shortens s to n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	wrongCmd.Flags().Bool("clear", false, "Delete all recorded wrong answers (requires --yes)")
	wrongCmd.Flags().BoolP("yes", "y", false, "Confirm --clear")
}
