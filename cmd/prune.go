package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop quiz history and missed questions older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		if days < 1 {
			return fmt.Errorf("--days must be at least 1")
		}

		rt, err := buildRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		before := rt.Progress.Summary()
		if err := rt.Progress.Prune(time.Duration(days) * 24 * time.Hour); err != nil {
			return err
		}
		after := rt.Progress.Summary()

		fmt.Printf("Pruned %d quiz sessions and %d missed questions older than %d days.\n",
			before.TotalQuizzes-after.TotalQuizzes,
			before.WrongQuestionCount-after.WrongQuestionCount,
			days)
		return nil
	},
}

func init() {
	pruneCmd.Flags().Int("days", 90, "Retention window in days")
}
