// Package home is the entry screen: a small menu over the quiz engine.
package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingiz/internal/engine"
	"github.com/abhisek/lingiz/internal/router"
	"github.com/abhisek/lingiz/internal/screen"
	"github.com/abhisek/lingiz/internal/screens/play"
	"github.com/abhisek/lingiz/internal/screens/stats"
	"github.com/abhisek/lingiz/internal/ui/components"
	"github.com/abhisek/lingiz/internal/ui/theme"
)

// DefaultQuizSize is the question count for a menu-launched quiz.
const DefaultQuizSize = 10

// HomeScreen implements screen.Screen for the main menu.
type HomeScreen struct {
	eng  *engine.Engine
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(eng *engine.Engine) *HomeScreen {
	s := &HomeScreen{eng: eng}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Take a Quiz", Action: s.startQuiz},
		{Label: "Review Mistakes", Action: s.startReview},
		{Label: "Progress & Stats", Action: s.showStats},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *HomeScreen) Init() tea.Cmd { return nil }

func (s *HomeScreen) Title() string { return "Home" }

func (s *HomeScreen) startQuiz() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: play.New(s.eng, play.ModeFresh, DefaultQuizSize, "")}
	}
}

func (s *HomeScreen) startReview() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: play.New(s.eng, play.ModeReview, DefaultQuizSize, "")}
	}
}

func (s *HomeScreen) showStats() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: stats.New(s.eng.Progress())}
	}
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	banner := theme.Title.Render("Lingiz") + "\n" +
		theme.Subtitle.Render("Turn your translated notes into quizzes") + "\n\n" +
		s.menu.View()

	card := theme.Card.Width(min(width-4, 60)).Render(banner)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
