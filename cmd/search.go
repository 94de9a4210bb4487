package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/questionbank"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search questions by text, answers or explanation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := cliEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		term := strings.Join(args, " ")
		hits := e.bank.Search(term)
		if len(hits) == 0 {
			fmt.Fprintf(out, "No questions match %q.\n", term)
			return nil
		}

		for _, g := range questionbank.GroupByKeyword(hits) {
			fmt.Fprintf(out, "%s (%d)\n", g.Keyword, len(g.Questions))
			for _, q := range g.Questions {
				fmt.Fprintf(out, "  %4d  %s\n", q.ID, truncate(q.Text, 80))
			}
		}
		fmt.Fprintf(out, "\n%d questions. Practice them with: onthi practice --search %q\n", len(hits), term)
		return nil
	},
}
