package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/goal"
	"github.com/abhisek/onthi/internal/store"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the planned exam date",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <YYYY-MM-DD>",
	Short: "Set the planned exam date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := cliEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		now := e.ctl.Now()
		date, err := time.ParseInLocation(store.DateLayout, args[0], now.Location())
		if err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[0])
		}
		if goal.EndOfDay(date).Before(now) {
			return fmt.Errorf("goal date %s is in the past", args[0])
		}
		if err := e.store.SetGoalDate(cmd.Context(), date); err != nil {
			return err
		}
		printCountdown(cmd, goal.Compute(date, now))
		return nil
	},
}

var goalClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the planned exam date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := cliEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.ClearGoalDate(cmd.Context()); err != nil {
			return fmt.Errorf("clear goal date: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Goal date cleared.")
		return nil
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the countdown to the planned exam date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := cliEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		now := e.ctl.Now()
		date, ok := e.store.GoalDate(cmd.Context(), now.Location())
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No goal date set. Use: onthi goal set YYYY-MM-DD")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exam date: %s\n", date.Format(store.DateLayout))
		printCountdown(cmd, goal.Compute(date, now))
		return nil
	},
}

func printCountdown(cmd *cobra.Command, c goal.Countdown) {
	out := cmd.OutOrStdout()
	if c.Passed {
		fmt.Fprintln(out, "The goal date has passed.")
		return
	}
	fmt.Fprintf(out, "%d days %d hours %d minutes left (%d%% of a %d-day plan elapsed)\n",
		c.Days, c.Hours, c.Minutes, c.Progress, goal.PrepDays)
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalClearCmd)
	goalCmd.AddCommand(goalShowCmd)
}
