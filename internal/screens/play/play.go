// Package play implements the active quiz screen: it drives one
// quiz.Session from generation through the final answer, then hands over to
// the summary screen.
package play

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingiz/internal/engine"
	"github.com/abhisek/lingiz/internal/quiz"
	"github.com/abhisek/lingiz/internal/quizgen"
	"github.com/abhisek/lingiz/internal/router"
	"github.com/abhisek/lingiz/internal/screen"
	"github.com/abhisek/lingiz/internal/screens/summary"
	"github.com/abhisek/lingiz/internal/ui/components"
	"github.com/abhisek/lingiz/internal/ui/layout"
)

// Mode selects where the quiz's questions come from.
type Mode int

const (
	// ModeFresh synthesizes new questions from the learning corpus.
	ModeFresh Mode = iota

	// ModeReview rebuilds questions from the wrong-question ledger.
	ModeReview
)

// PlayScreen implements screen.Screen for an active quiz.
type PlayScreen struct {
	eng        *engine.Engine
	mode       Mode
	count      int
	typeFilter quizgen.QuestionType

	sess      *quiz.Session
	mc        components.MultiChoice
	input     components.TextInput
	mcActive  bool
	feedback  bool
	correct   bool
	shortfall int

	loading bool
	errMsg  string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a quiz screen that will generate count questions on Init.
// typeFilter narrows the quiz to one question type when non-empty.
func New(eng *engine.Engine, mode Mode, count int, typeFilter quizgen.QuestionType) *PlayScreen {
	return &PlayScreen{
		eng:        eng,
		mode:       mode,
		count:      count,
		typeFilter: typeFilter,
		loading:    true,
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	return s.loadQuiz()
}

func (s *PlayScreen) Title() string {
	if s.mode == ModeReview {
		return "Review"
	}
	return "Quiz"
}

// Status renders the running score for the header.
func (s *PlayScreen) Status() string {
	if s.sess == nil {
		return ""
	}
	r := s.sess.Results()
	return fmt.Sprintf("✔ %d/%d", r.Correct, r.TotalQuestions)
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.loading:
		return nil
	case s.feedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	}
}

// loadQuiz generates the question batch off the UI loop.
func (s *PlayScreen) loadQuiz() tea.Cmd {
	return func() tea.Msg {
		if s.mode == ModeReview {
			q := s.eng.ReviewQuiz(s.count, s.typeFilter)
			if len(q.Questions) == 0 {
				return quizReadyMsg{Err: errors.New("no missed questions to review yet")}
			}
			return quizReadyMsg{Questions: q.Questions}
		}

		var types []quizgen.QuestionType
		if s.typeFilter != "" {
			types = append(types, s.typeFilter)
		}
		q, err := s.eng.GenerateQuiz(context.Background(), s.count, types...)
		if err != nil {
			return quizReadyMsg{Err: err}
		}
		return quizReadyMsg{Questions: q.Questions, Shortfall: q.Shortfall}
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)

	case progressSavedMsg:
		return s.handoverToSummary(msg.Err)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.active() && !s.mcActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		if errors.Is(msg.Err, engine.ErrNoEligibleRecords) {
			s.errMsg = "Your notes have no records that can produce questions yet.\nPlay with the overlay a while longer, then come back."
		} else {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}

	s.sess = quiz.NewSession(msg.Questions)
	s.shortfall = msg.Shortfall
	return s, s.setupQuestion()
}

// setupQuestion prepares the widget for the question at the cursor.
func (s *PlayScreen) setupQuestion() tea.Cmd {
	q, ok := s.sess.Current()
	if !ok {
		return nil
	}

	s.feedback = false
	if q.Type.IsChoice() {
		s.mcActive = true
		s.mc = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectOption)
		return nil
	}

	s.mcActive = false
	s.input = components.NewTextInput("Type the word...", 40)
	return s.input.Init()
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" || s.loading {
		return s, nil
	}

	if s.feedback {
		if msg.String() == "enter" {
			return s.advance()
		}
		return s, nil
	}

	if _, ok := s.sess.Current(); !ok {
		return s, nil
	}

	if s.mcActive {
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			correct, err := s.sess.Submit(quiz.OptionAnswer(s.mc.ChosenIndex))
			if err != nil {
				s.errMsg = err.Error()
				return s, cmd
			}
			s.correct = correct
			s.feedback = true
		}
		return s, cmd
	}

	if msg.String() == "enter" {
		if s.input.Value() == "" {
			return s, nil
		}
		correct, err := s.sess.Submit(quiz.TextAnswer(s.input.Value()))
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.input.Submit(correct)
		s.correct = correct
		s.feedback = true
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// advance moves to the next question, or finishes and records the session.
func (s *PlayScreen) advance() (screen.Screen, tea.Cmd) {
	if s.sess.Advance() {
		return s, s.setupQuestion()
	}

	s.sess.Finish()
	results := s.sess.Results()
	isReview := s.mode == ModeReview
	return s, func() tea.Msg {
		return progressSavedMsg{Err: s.eng.RecordResults(context.Background(), results, isReview)}
	}
}

// handoverToSummary swaps this screen for the summary so Esc from the
// summary returns to home rather than a dead session.
func (s *PlayScreen) handoverToSummary(saveErr error) (screen.Screen, tea.Cmd) {
	warning := ""
	if saveErr != nil {
		warning = fmt.Sprintf("Progress could not be saved: %v", saveErr)
	}

	sum := summary.New(s.sess.Results(), s.eng.Progress().Insights(), warning)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
}

func (s *PlayScreen) active() bool {
	return s.sess != nil && !s.feedback && s.errMsg == "" && !s.loading
}
