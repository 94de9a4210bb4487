package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/questionbank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Validate and maintain the question bank file",
}

var bankCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the bank and report duplicate or similar questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, questions, err := readBank(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if _, err := questionbank.New(questions); err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", path, err)
		} else {
			fmt.Fprintf(out, "✓ %s: %d questions\n", path, len(questions))
		}

		report := questionbank.FindDuplicates(questions)
		fmt.Fprintf(out, "Unique texts: %d of %d\n", report.Unique, report.Total)

		if len(report.Duplicates) > 0 {
			fmt.Fprintf(out, "\nExact duplicates (%d)\n", len(report.Duplicates))
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, d := range report.Duplicates {
				fmt.Fprintf(out, "IDs %v: %s\n", d.IDs, truncate(d.Text, 60))
			}
		}
		if len(report.Similar) > 0 {
			fmt.Fprintf(out, "\nSimilar questions (%d)\n", len(report.Similar))
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, p := range report.Similar {
				fmt.Fprintf(out, "%3.0f%%  #%d %s\n      #%d %s\n",
					p.Similarity*100, p.FirstID, truncate(p.First, 60), p.SecondID, truncate(p.Second, 60))
			}
		}
		return nil
	},
}

var bankRenumberCmd = &cobra.Command{
	Use:   "renumber",
	Short: "Reassign question IDs 1..n in file order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, questions, err := readBank(cmd)
		if err != nil {
			return err
		}
		renumbered := questionbank.Renumber(questions)
		if err := saveBank(cmd, path, renumbered); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renumbered %d questions.\n", len(renumbered))
		return nil
	},
}

var bankFlagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Write topic flags inferred from each question's category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")

		path, questions, err := readBank(cmd)
		if err != nil {
			return err
		}
		mode := questionbank.FlagsFillMissing
		if overwrite {
			mode = questionbank.FlagsOverwrite
		}
		updated, counts := questionbank.AssignFlags(questions, mode)
		if err := saveBank(cmd, path, updated); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range []string{"isKhaiNiemQuyTac", "isVanHoaGiaoThong", "isKyThuatLaiXe", "isSaHinh"} {
			fmt.Fprintf(out, "%-18s %d\n", name, counts[name])
		}
		return nil
	},
}

func readBank(cmd *cobra.Command) (string, []questionbank.Question, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(cfg.BankPath)
	if err != nil {
		return "", nil, fmt.Errorf("read question bank: %w", err)
	}
	questions, err := questionbank.Decode(data)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", cfg.BankPath, err)
	}
	return cfg.BankPath, questions, nil
}

func saveBank(cmd *cobra.Command, path string, questions []questionbank.Question) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		data, err := questionbank.Encode(questions)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	backup := ""
	if keep, _ := cmd.Flags().GetBool("backup"); keep {
		backup = path + ".bak"
	}
	return questionbank.Save(path, questions, backup)
}

func init() {
	for _, c := range []*cobra.Command{bankRenumberCmd, bankFlagsCmd} {
		c.Flags().Bool("backup", true, "Keep the previous file as <bank>.bak")
		c.Flags().Bool("dry-run", false, "Print the result instead of writing the file")
	}
	bankFlagsCmd.Flags().Bool("overwrite", false, "Recompute flags that are already present")

	bankCmd.AddCommand(bankCheckCmd)
	bankCmd.AddCommand(bankRenumberCmd)
	bankCmd.AddCommand(bankFlagsCmd)
}
