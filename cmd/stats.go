package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingiz/internal/quizgen"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print learning-progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := buildRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		sum := rt.Progress.Summary()

		if sum.TotalQuizzes == 0 {
			fmt.Println("No quizzes taken yet.")
			return nil
		}

		fmt.Printf("Quizzes:          %d\n", sum.TotalQuizzes)
		fmt.Printf("Questions:        %d\n", sum.TotalQuestions)
		fmt.Printf("Overall accuracy: %.1f%%\n", sum.OverallAccuracy)
		fmt.Printf("Recent accuracy:  %.1f%%\n", sum.RecentAccuracy)
		if sum.TrendAvailable {
			fmt.Printf("Trend:            %+.1f points\n", sum.ImprovementTrend)
		}

		fmt.Println()
		fmt.Println("By difficulty")
		fmt.Println(strings.Repeat("─", 44))
		diff := rt.Progress.DifficultyStats()
		for _, d := range quizgen.AllDifficulties() {
			printCategory(string(d), diff[d].Total, diff[d].Accuracy())
		}

		fmt.Println()
		fmt.Println("By question type")
		fmt.Println(strings.Repeat("─", 44))
		types := rt.Progress.QuestionTypeStats()
		for _, t := range quizgen.AllTypes() {
			printCategory(t.Label(), types[t].Total, types[t].Accuracy())
		}

		review := rt.Progress.ReviewStats()
		if review.Total > 0 {
			fmt.Printf("\nReview queue: %d questions\n", review.Total)
			for _, e := range review.MostProblematic {
				prompt := e.Question.Prompt
				if i := strings.IndexByte(prompt, '\n'); i >= 0 {
					prompt = prompt[:i]
				}
				fmt.Printf("  ×%-3d %s\n", e.ErrorCount, prompt)
			}
		}

		return nil
	},
}

func printCategory(label string, total int, accuracy float64) {
	if total == 0 {
		fmt.Printf("%-20s not attempted\n", label)
		return
	}
	fmt.Printf("%-20s %5.1f%%  (%d answered)\n", label, accuracy, total)
}
