package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lingiz/internal/app"
	"github.com/abhisek/lingiz/internal/quizgen"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Start a quiz from your translated notes",
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

		return app.RunQuiz(rt.Engine, count, typeFilter)
	},
}

// typeFilterFlag parses the shared --type flag, "" meaning all types.
func typeFilterFlag(cmd *cobra.Command) (quizgen.QuestionType, error) {
	raw, _ := cmd.Flags().GetString("type")
	if raw == "" {
		return "", nil
	}
	return quizgen.ParseType(raw)
}

func init() {
	quizCmd.Flags().IntP("count", "n", 10, "Number of questions")
	quizCmd.Flags().StringP("type", "t", "", "Limit to one question type (word_spelling, grammar_choice, word_choice, translation_choice)")
}
