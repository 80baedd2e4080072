// Package stats renders learning-progress analytics: overall numbers,
// per-category accuracy bars, the trend, and the insight lines.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingiz/internal/progress"
	"github.com/abhisek/lingiz/internal/quizgen"
	"github.com/abhisek/lingiz/internal/screen"
	"github.com/abhisek/lingiz/internal/ui/components"
	"github.com/abhisek/lingiz/internal/ui/layout"
	"github.com/abhisek/lingiz/internal/ui/theme"
)

// StatsScreen implements screen.Screen for the analytics view.
type StatsScreen struct {
	store *progress.Store
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a stats screen over the progress store.
func New(store *progress.Store) *StatsScreen {
	return &StatsScreen{store: store}
}

func (s *StatsScreen) Init() tea.Cmd { return nil }

func (s *StatsScreen) Title() string { return "Progress" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	sum := s.store.Summary()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Learning Progress") + "\n\n")

	if sum.TotalQuizzes == 0 {
		b.WriteString(theme.Hint.Render("No quizzes yet. Take one to start tracking progress."))
	} else {
		b.WriteString(theme.Body.Render(fmt.Sprintf(
			"Quizzes: %d    Questions: %d    Overall: %.1f%%    Recent: %.1f%%",
			sum.TotalQuizzes, sum.TotalQuestions, sum.OverallAccuracy, sum.RecentAccuracy)) + "\n")

		if sum.TrendAvailable {
			b.WriteString(renderTrend(sum.ImprovementTrend) + "\n")
		}

		barWidth := min(width-20, 50)
		b.WriteString("\n" + theme.Subtitle.Render("By difficulty") + "\n")
		diffStats := s.store.DifficultyStats()
		for _, d := range quizgen.AllDifficulties() {
			b.WriteString(categoryBar(string(d), diffStats[d], barWidth) + "\n")
		}

		b.WriteString("\n" + theme.Subtitle.Render("By question type") + "\n")
		typeStats := s.store.QuestionTypeStats()
		for _, t := range quizgen.AllTypes() {
			b.WriteString(categoryBar(t.Label(), typeStats[t], barWidth) + "\n")
		}

		review := s.store.ReviewStats()
		if review.Total > 0 {
			b.WriteString("\n" + theme.Subtitle.Render(
				fmt.Sprintf("Review queue: %d questions", review.Total)) + "\n")
			for _, e := range review.MostProblematic {
				b.WriteString(theme.Hint.Render(fmt.Sprintf(
					"  ×%d  %s", e.ErrorCount, firstLine(e.Question.Prompt))) + "\n")
			}
		}

		if lines := s.store.Insights(); len(lines) > 0 {
			b.WriteString("\n")
			for _, line := range lines {
				b.WriteString(theme.Body.Render("• "+line) + "\n")
			}
		}
	}

	card := theme.Card.Width(min(width-4, 90)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func renderTrend(trend float64) string {
	switch {
	case trend > 0:
		return theme.Correct.Render(fmt.Sprintf("Trend: ↑ %.1f points over recent sessions", trend))
	case trend < 0:
		return theme.Incorrect.Render(fmt.Sprintf("Trend: ↓ %.1f points over recent sessions", -trend))
	}
	return theme.Hint.Render("Trend: steady")
}

func categoryBar(label string, stats progress.CategoryStats, width int) string {
	if stats.Total == 0 {
		return theme.Hint.Render(fmt.Sprintf("  %-18s not attempted", label))
	}
	bar := components.NewProgressBar(fmt.Sprintf("  %-18s", label), stats.Accuracy()/100, true, width)
	return bar.View()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
