package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/controller"
	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/sampler"
	"github.com/abhisek/onthi/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session with instant feedback",
	Long: `Start a practice session. Modes: random, full, wrong, critical, signs,
category (with --category) and custom (with --ids or --search).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := practiceRequest(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, &req)
	},
}

func init() {
	addPracticeFlags(practiceCmd)
}

func addPracticeFlags(c *cobra.Command) {
	c.Flags().StringP("mode", "m", string(sampler.ModeRandom), "Practice mode")
	c.Flags().StringP("category", "c", "", "Category for category mode (e.g. concepts, signs)")
	c.Flags().IntSlice("ids", nil, "Question IDs for custom mode")
	c.Flags().StringP("search", "s", "", "Search term for custom mode")
	c.Flags().IntP("limit", "n", 0, "Cap the number of questions in full and wrong modes")
}

// practiceRequest builds and validates a StartRequest from flags.
func practiceRequest(cmd *cobra.Command) (controller.StartRequest, error) {
	mode, _ := cmd.Flags().GetString("mode")
	category, _ := cmd.Flags().GetString("category")
	ids, _ := cmd.Flags().GetIntSlice("ids")
	search, _ := cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")

	req := controller.StartRequest{
		Kind:       session.KindPractice,
		Mode:       sampler.Mode(mode),
		CustomIDs:  ids,
		SearchTerm: search,
		Limit:      limit,
	}
	if category != "" {
		c, ok := questionbank.ParseCategory(category)
		if !ok {
			return req, fmt.Errorf("unknown category %q", category)
		}
		req.Category = c
		if !cmd.Flags().Changed("mode") {
			req.Mode = sampler.ModeCategory
		}
	}
	if (len(ids) > 0 || search != "") && !cmd.Flags().Changed("mode") {
		req.Mode = sampler.ModeCustom
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}
