package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingiz/internal/quizgen"
	"github.com/abhisek/lingiz/internal/ui/components"
	"github.com/abhisek/lingiz/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, height, theme.Incorrect.Render(s.errMsg))
	case s.loading:
		return centered(width, height, theme.Hint.Render("Preparing your quiz..."))
	case s.sess == nil:
		return ""
	}

	q, ok := s.sess.Current()
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")

	if q.IsReview && q.ReviewHint != "" {
		b.WriteString(theme.Hint.Render("↻ "+q.ReviewHint) + "\n\n")
	}

	if s.mcActive {
		b.WriteString(s.mc.View())
	} else {
		b.WriteString(s.renderSpelling(q))
	}

	if s.feedback {
		b.WriteString("\n" + s.renderFeedback(q))
	}

	card := theme.Card.Width(min(width-4, 90)).Render(b.String())
	return centered(width, height, card)
}

func (s *PlayScreen) renderProgress(width int) string {
	r := s.sess.Results()
	answered := len(r.Answers)
	total := r.TotalQuestions

	label := fmt.Sprintf("Question %d of %d", min(answered+1, total), total)
	bar := components.NewProgressBar(label, float64(answered)/float64(total), false, min(width-12, 60))

	line := bar.View()
	if s.shortfall > 0 {
		line += "\n" + theme.Hint.Render(
			fmt.Sprintf("(%d fewer than requested: not enough usable notes)", s.shortfall))
	}
	return line
}

func (s *PlayScreen) renderSpelling(q quizgen.Question) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")
	if q.Context != "" {
		b.WriteString(theme.Hint.Render("Context: "+q.Context) + "\n\n")
	}
	if q.Hint != "" {
		b.WriteString(theme.Hint.Render("Hint: "+q.Hint) + "\n\n")
	}
	b.WriteString(s.input.View())
	return b.String()
}

func (s *PlayScreen) renderFeedback(q quizgen.Question) string {
	var b strings.Builder
	if s.correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
	}
	if q.Explanation != "" {
		b.WriteString("\n" + theme.Body.Render(q.Explanation))
	}
	return b.String()
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
