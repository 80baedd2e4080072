package progress

import (
	"testing"

	"github.com/abhisek/lingiz/internal/quizgen"
)

func TestSummaryEmpty(t *testing.T) {
	s, _ := tempStore(t)
	sum := s.Summary()

	if sum.TotalQuizzes != 0 || sum.TotalQuestions != 0 {
		t.Errorf("expected zero counts, got %+v", sum)
	}
	if sum.OverallAccuracy != 0 || sum.RecentAccuracy != 0 {
		t.Errorf("expected zero accuracies, got %+v", sum)
	}
	if sum.TrendAvailable {
		t.Error("trend must be unavailable with no sessions")
	}
	if len(sum.WeakAreas) != 0 || len(sum.StrongAreas) != 0 {
		t.Errorf("expected no areas, got weak=%v strong=%v", sum.WeakAreas, sum.StrongAreas)
	}
}

func TestSummaryAccuracyRounding(t *testing.T) {
	s, _ := tempStore(t)

	// 2 of 3 correct = 66.666... → 66.7
	err := s.Record(resultsWith(
		answer("q1", quizgen.WordSpelling, 1, true),
		answer("q2", quizgen.WordSpelling, 2, true),
		answer("q3", quizgen.WordSpelling, 3, false),
	))
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if got := s.Summary().OverallAccuracy; got != 66.7 {
		t.Errorf("expected 66.7, got %v", got)
	}
}

func TestSummaryTrendNeedsTenSessions(t *testing.T) {
	s, _ := tempStore(t)

	for range 9 {
		if err := s.Record(resultsWith(answer("q", quizgen.WordSpelling, 1, true))); err != nil {
			t.Fatal(err)
		}
	}
	if s.Summary().TrendAvailable {
		t.Error("trend must need 10 sessions")
	}

	if err := s.Record(resultsWith(answer("q", quizgen.WordSpelling, 1, true))); err != nil {
		t.Fatal(err)
	}
	if !s.Summary().TrendAvailable {
		t.Error("trend must be available at 10 sessions")
	}
}

func TestSummaryTrendDirection(t *testing.T) {
	s, _ := tempStore(t)

	// First five sessions all wrong, last five all correct: trend +100.
	for i := range 10 {
		correct := i >= 5
		if err := s.Record(resultsWith(answer("q", quizgen.WordSpelling, 1, correct))); err != nil {
			t.Fatal(err)
		}
	}

	sum := s.Summary()
	if !sum.TrendAvailable {
		t.Fatal("expected trend")
	}
	if sum.ImprovementTrend != 100.0 {
		t.Errorf("expected trend +100.0, got %v", sum.ImprovementTrend)
	}
}

func TestWeakAndStrongAreas(t *testing.T) {
	s, _ := tempStore(t)

	// Spelling: 1 of 2 correct (50% → weak).
	// Word choice: 5 of 5 correct (100% → strong).
	err := s.Record(resultsWith(
		answer("s1", quizgen.WordSpelling, 1, true),
		answer("s2", quizgen.WordSpelling, 2, false),
		answer("w1", quizgen.WordChoice, 3, true),
		answer("w2", quizgen.WordChoice, 4, true),
		answer("w3", quizgen.WordChoice, 5, true),
		answer("w4", quizgen.WordChoice, 6, true),
		answer("w5", quizgen.WordChoice, 7, true),
	))
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	sum := s.Summary()
	if !containsString(sum.WeakAreas, quizgen.WordSpelling.Label()) {
		t.Errorf("expected %q in weak areas %v", quizgen.WordSpelling.Label(), sum.WeakAreas)
	}
	if !containsString(sum.StrongAreas, quizgen.WordChoice.Label()) {
		t.Errorf("expected %q in strong areas %v", quizgen.WordChoice.Label(), sum.StrongAreas)
	}
	if containsString(sum.WeakAreas, quizgen.GrammarChoice.Label()) {
		t.Error("unattempted categories must not be classified")
	}
}

func TestAreaBoundariesAreExclusive(t *testing.T) {
	s, _ := tempStore(t)

	// Exactly 60%: neither weak (<60) nor strong (>80).
	err := s.Record(resultsWith(
		answer("q1", quizgen.WordSpelling, 1, true),
		answer("q2", quizgen.WordSpelling, 2, true),
		answer("q3", quizgen.WordSpelling, 3, true),
		answer("q4", quizgen.WordSpelling, 4, false),
		answer("q5", quizgen.WordSpelling, 5, false),
	))
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	sum := s.Summary()
	label := quizgen.WordSpelling.Label()
	if containsString(sum.WeakAreas, label) || containsString(sum.StrongAreas, label) {
		t.Errorf("60%% must be neither weak nor strong: weak=%v strong=%v",
			sum.WeakAreas, sum.StrongAreas)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
