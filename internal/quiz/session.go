package quiz

import (
	"errors"
	"strings"
	"time"

	"github.com/abhisek/lingiz/internal/quizgen"
)

// ErrNoCurrentQuestion is returned when an answer is submitted past the end
// of the question list. That is a driver bug, not a transient condition.
var ErrNoCurrentQuestion = errors.New("no current question to answer")

// State is the session lifecycle phase.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Answer is a submitted answer. Text carries the typed word for spelling
// questions; Option carries the chosen index for choice questions.
type Answer struct {
	Text   string
	Option int
}

// TextAnswer builds an answer for a WordSpelling question.
func TextAnswer(text string) Answer {
	return Answer{Text: text, Option: -1}
}

// OptionAnswer builds an answer for a choice question.
func OptionAnswer(index int) Answer {
	return Answer{Option: index}
}

// AnswerRecord stores one scored answer with a snapshot of its question.
type AnswerRecord struct {
	Answer    Answer
	IsCorrect bool
	Question  quizgen.Question
}

// Session drives one learner through a fixed, ordered question list.
// It is single-owner mutable state: not safe for concurrent use.
type Session struct {
	questions  []quizgen.Question
	cursor     int
	answers    map[string]AnswerRecord
	score      int
	startedAt  time.Time
	finishedAt time.Time
}

// NewSession creates a session over a finalized question list.
func NewSession(questions []quizgen.Question) *Session {
	return &Session{
		questions: questions,
		answers:   make(map[string]AnswerRecord),
		startedAt: time.Now(),
	}
}

// State returns the lifecycle phase.
func (s *Session) State() State {
	if !s.finishedAt.IsZero() || s.cursor >= len(s.questions) {
		return StateCompleted
	}
	if s.cursor == 0 && len(s.answers) == 0 {
		return StateNotStarted
	}
	return StateInProgress
}

// Current returns the question at the cursor. The second return is false
// once the cursor has passed the last question.
func (s *Session) Current() (quizgen.Question, bool) {
	if s.cursor >= len(s.questions) {
		return quizgen.Question{}, false
	}
	return s.questions[s.cursor], true
}

// Submit scores an answer against the current question and records it.
// Submitting twice for the same question re-scores it: the last answer wins
// and the running score is adjusted, never double-counted.
func (s *Session) Submit(ans Answer) (bool, error) {
	q, ok := s.Current()
	if !ok {
		return false, ErrNoCurrentQuestion
	}

	correct := checkAnswer(ans, q)

	if prev, resubmitted := s.answers[q.QuestionID]; resubmitted && prev.IsCorrect {
		s.score--
	}
	if correct {
		s.score++
	}

	s.answers[q.QuestionID] = AnswerRecord{
		Answer:    ans,
		IsCorrect: correct,
		Question:  q,
	}

	return correct, nil
}

// Advance moves the cursor to the next question. It returns false once the
// cursor has passed the last question.
func (s *Session) Advance() bool {
	s.cursor++
	return s.cursor < len(s.questions)
}

// Completed reports whether every question has been passed.
func (s *Session) Completed() bool {
	return s.cursor >= len(s.questions)
}

// Finish stamps the end time. Calling it again is a no-op.
func (s *Session) Finish() {
	if s.finishedAt.IsZero() {
		s.finishedAt = time.Now()
	}
}

// checkAnswer applies the type-specific comparison rule. Both sides of a
// spelling comparison are trimmed and lowercased, so a stored answer that
// carries stray whitespace from its source record still matches.
func checkAnswer(ans Answer, q quizgen.Question) bool {
	if q.Type == quizgen.WordSpelling {
		return strings.ToLower(strings.TrimSpace(ans.Text)) == strings.ToLower(strings.TrimSpace(q.Answer))
	}
	return q.CorrectOption >= 0 && ans.Option == q.CorrectOption
}
