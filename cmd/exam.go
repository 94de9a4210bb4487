package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/controller"
	"github.com/abhisek/onthi/internal/session"
)

var examCmd = &cobra.Command{
	Use:       "exam [standard|full|wrong|speed]",
	Short:     "Start a timed mock exam",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"standard", "full", "wrong", "speed"},
	RunE: func(cmd *cobra.Command, args []string) error {
		variant := session.VariantStandard
		if len(args) == 1 {
			variant = session.Variant(args[0])
		}
		req := controller.Exam(variant)
		if err := req.Validate(); err != nil {
			return fmt.Errorf("exam %q: %w", variant, err)
		}
		return runApp(cmd, &req)
	},
}
