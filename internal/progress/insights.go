package progress

import (
	"fmt"
	"strings"
)

// Insights renders the summary as short human-readable observations for the
// stats screen. An empty document yields a single getting-started line.
func (s *Store) Insights() []string {
	sum := s.Summary()

	if sum.TotalQuizzes == 0 {
		return []string{"No quizzes taken yet. Run a quiz to start tracking progress."}
	}

	var lines []string

	switch acc := sum.OverallAccuracy; {
	case acc >= 90:
		lines = append(lines, fmt.Sprintf("Excellent work: %.1f%% overall accuracy.", acc))
	case acc >= 70:
		lines = append(lines, fmt.Sprintf("Solid progress: %.1f%% overall accuracy.", acc))
	case acc >= 60:
		lines = append(lines, fmt.Sprintf("Getting there: %.1f%% overall accuracy. Keep practicing.", acc))
	default:
		lines = append(lines, fmt.Sprintf("Overall accuracy is %.1f%%. Shorter, more frequent quizzes may help.", acc))
	}

	if sum.TrendAvailable {
		switch trend := sum.ImprovementTrend; {
		case trend > 5:
			lines = append(lines, fmt.Sprintf("You are improving: recent sessions are up %.1f points.", trend))
		case trend < -5:
			lines = append(lines, fmt.Sprintf("Recent sessions dipped %.1f points. A review round could help.", -trend))
		}
	}

	if len(sum.WeakAreas) > 0 {
		lines = append(lines, "Needs attention: "+strings.Join(sum.WeakAreas, ", ")+".")
	}
	if len(sum.StrongAreas) > 0 {
		lines = append(lines, "Strengths: "+strings.Join(sum.StrongAreas, ", ")+".")
	}

	switch n := sum.WrongQuestionCount; {
	case n > 10:
		lines = append(lines, fmt.Sprintf("%d questions are waiting in review. Clearing a few each day works best.", n))
	case n > 0:
		lines = append(lines, fmt.Sprintf("%d questions are waiting in review.", n))
	}

	return lines
}
