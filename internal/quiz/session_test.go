package quiz

import (
	"errors"
	"testing"

	"github.com/abhisek/lingiz/internal/quizgen"
)

func spellingQ(id, answer string) quizgen.Question {
	return quizgen.Question{
		QuestionID:    id,
		Type:          quizgen.WordSpelling,
		Answer:        answer,
		CorrectOption: -1,
	}
}

func choiceQ(id string, correct int) quizgen.Question {
	return quizgen.Question{
		QuestionID:    id,
		Type:          quizgen.WordChoice,
		Options:       []string{"a", "b", "c", "d"},
		CorrectOption: correct,
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSession([]quizgen.Question{
		spellingQ("q1", "reise"),
		choiceQ("q2", 2),
	})

	if s.State() != StateNotStarted {
		t.Errorf("expected not_started, got %s", s.State())
	}

	correct, err := s.Submit(TextAnswer("  Reise "))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !correct {
		t.Error("case-insensitive trimmed spelling should be correct")
	}

	if !s.Advance() {
		t.Fatal("expected a second question")
	}
	if s.State() != StateInProgress {
		t.Errorf("expected in_progress, got %s", s.State())
	}

	correct, err = s.Submit(OptionAnswer(1))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if correct {
		t.Error("option 1 is not the correct option")
	}

	if s.Advance() {
		t.Error("expected no more questions")
	}
	if !s.Completed() {
		t.Error("expected completed session")
	}

	s.Finish()
	r := s.Results()
	if r.TotalQuestions != 2 || r.Correct != 1 || r.Wrong != 1 {
		t.Errorf("unexpected results: %+v", r)
	}
	if r.Accuracy != 50.0 {
		t.Errorf("expected accuracy 50.0, got %v", r.Accuracy)
	}
	if !r.Finished {
		t.Error("expected finished results")
	}
}

func TestAccuracyRounding(t *testing.T) {
	questions := make([]quizgen.Question, 10)
	for i := range questions {
		questions[i] = spellingQ(string(rune('a'+i)), "w")
	}
	s := NewSession(questions)

	for i := range 10 {
		ans := "w"
		if i >= 7 {
			ans = "x"
		}
		if _, err := s.Submit(TextAnswer(ans)); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		s.Advance()
	}

	r := s.Results()
	if r.Correct != 7 {
		t.Fatalf("expected 7 correct, got %d", r.Correct)
	}
	if r.Accuracy != 70.0 {
		t.Errorf("expected accuracy 70.0, got %v", r.Accuracy)
	}
}

func TestResubmitRescores(t *testing.T) {
	s := NewSession([]quizgen.Question{choiceQ("q1", 0)})

	if correct, _ := s.Submit(OptionAnswer(0)); !correct {
		t.Fatal("first submit should be correct")
	}
	if correct, _ := s.Submit(OptionAnswer(3)); correct {
		t.Fatal("second submit should be wrong")
	}

	r := s.Results()
	if r.Correct != 0 {
		t.Errorf("resubmit must re-score, got %d correct", r.Correct)
	}
	if rec := r.Answers["q1"]; rec.IsCorrect || rec.Answer.Option != 3 {
		t.Errorf("last answer must win: %+v", rec)
	}
}

func TestSubmitPastEnd(t *testing.T) {
	s := NewSession([]quizgen.Question{spellingQ("q1", "w")})
	s.Submit(TextAnswer("w"))
	s.Advance()

	if _, err := s.Submit(TextAnswer("w")); !errors.Is(err, ErrNoCurrentQuestion) {
		t.Errorf("expected ErrNoCurrentQuestion, got %v", err)
	}
}

func TestEmptySessionResults(t *testing.T) {
	s := NewSession(nil)
	r := s.Results()
	if r.TotalQuestions != 0 || r.Accuracy != 0 {
		t.Errorf("unexpected empty results: %+v", r)
	}
	if s.State() != StateCompleted {
		t.Errorf("an empty session is trivially completed, got %s", s.State())
	}
}

func TestFinishIdempotent(t *testing.T) {
	s := NewSession([]quizgen.Question{spellingQ("q1", "w")})
	s.Finish()
	first := s.Results().FinishedAt
	s.Finish()
	if !s.Results().FinishedAt.Equal(first) {
		t.Error("Finish must be idempotent")
	}
}

func TestChoiceWithoutOptionsNeverCorrect(t *testing.T) {
	// A skeleton that slipped through enhancement has CorrectOption -1.
	q := quizgen.Question{
		QuestionID:    "q1",
		Type:          quizgen.WordChoice,
		CorrectOption: -1,
		NeedsOptions:  true,
	}
	s := NewSession([]quizgen.Question{q})

	if correct, _ := s.Submit(OptionAnswer(0)); correct {
		t.Error("an unenhanced skeleton must never score as correct")
	}
}

func TestSpellingAnswerWithStoredWhitespace(t *testing.T) {
	// An important-words key with stray whitespace reaches the question
	// unchanged when loaded from an older progress document.
	s := NewSession([]quizgen.Question{spellingQ("q1", " brot ")})

	correct, err := s.Submit(TextAnswer("Brot"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !correct {
		t.Error("a stored answer with stray whitespace must still match")
	}
}
