package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lingiz/internal/app"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Re-quiz the questions you got wrong, most-missed first",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		typeFilter, err := typeFilterFlag(cmd)
		if err != nil {
			return err
		}

		rt, err := buildRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		return app.RunReview(rt.Engine, count, typeFilter)
	},
}

func init() {
	reviewCmd.Flags().IntP("count", "n", 10, "Maximum number of review questions")
	reviewCmd.Flags().StringP("type", "t", "", "Limit review to one question type")
}
