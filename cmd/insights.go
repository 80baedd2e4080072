package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Print short observations about your learning progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := buildRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		for _, line := range rt.Progress.Insights() {
			fmt.Println("•", line)
		}
		return nil
	},
}
