package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/achievements"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show unlocked achievements and the day streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := cliEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		engine := e.ctl.Achievements()

		unlocked := make(map[achievements.ID]bool)
		for _, id := range engine.Unlocked(ctx) {
			unlocked[id] = true
		}

		all := achievements.AllIDs()
		fmt.Fprintf(out, "Unlocked %d/%d\n\n", len(unlocked), len(all))
		for _, id := range all {
			mark := "🔒"
			if unlocked[id] {
				mark = id.Icon()
			}
			fmt.Fprintf(out, "%s  %-24s %s\n", mark, id.DisplayName(), id.Description())
		}

		streak := engine.CurrentStreak(ctx)
		fmt.Fprintf(out, "\nStreak: %d day(s)", streak)
		if next := achievements.NextStreakMilestone(streak); next > 0 {
			fmt.Fprintf(out, ", next milestone at %d", next)
		}
		fmt.Fprintln(out)
		return nil
	},
}
