// Package summary shows the results of a finished quiz.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingiz/internal/quiz"
	"github.com/abhisek/lingiz/internal/router"
	"github.com/abhisek/lingiz/internal/screen"
	"github.com/abhisek/lingiz/internal/ui/layout"
	"github.com/abhisek/lingiz/internal/ui/theme"
)

// SummaryScreen implements screen.Screen for the post-quiz summary.
type SummaryScreen struct {
	results  quiz.Results
	insights []string
	warning  string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. warning, when non-empty, is shown when the
// session could not be persisted.
func New(results quiz.Results, insights []string, warning string) *SummaryScreen {
	return &SummaryScreen{
		results:  results,
		insights: insights,
		warning:  warning,
	}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Quiz Complete" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter / Esc", Description: "Back to home"}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	grade := theme.Correct
	if s.results.Accuracy < 60 {
		grade = theme.Incorrect
	}

	b.WriteString(theme.Title.Render("Quiz Complete!") + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n",
		theme.Body.Render(fmt.Sprintf("Score: %d / %d", s.results.Correct, s.results.TotalQuestions)),
		grade.Render(fmt.Sprintf("%.1f%%", s.results.Accuracy)),
	))
	if s.results.Finished {
		b.WriteString(theme.Hint.Render(
			fmt.Sprintf("Time: %s", s.results.Duration.Round(time.Second))) + "\n")
	}

	if len(s.insights) > 0 {
		b.WriteString("\n")
		for _, line := range s.insights {
			b.WriteString(theme.Body.Render("• "+line) + "\n")
		}
	}

	if s.warning != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.warning) + "\n")
	}

	card := theme.Card.Width(min(width-4, 80)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
