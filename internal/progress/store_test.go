package progress

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingiz/internal/quiz"
	"github.com/abhisek/lingiz/internal/quizgen"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progress.json")
	return Open(path, quietLogger()), path
}

func resultsWith(answers ...quiz.AnswerRecord) quiz.Results {
	correct := 0
	m := make(map[string]quiz.AnswerRecord, len(answers))
	for _, a := range answers {
		m[a.Question.QuestionID] = a
		if a.IsCorrect {
			correct++
		}
	}
	total := len(answers)
	acc := 0.0
	if total > 0 {
		acc = float64(correct) / float64(total) * 100
	}
	return quiz.Results{
		TotalQuestions: total,
		Correct:        correct,
		Wrong:          total - correct,
		Accuracy:       acc,
		Finished:       true,
		Duration:       30 * time.Second,
		Answers:        m,
	}
}

func answer(id string, qt quizgen.QuestionType, source int, correct bool) quiz.AnswerRecord {
	return quiz.AnswerRecord{
		IsCorrect: correct,
		Question: quizgen.Question{
			QuestionID:     id,
			Type:           qt,
			Difficulty:     quizgen.Medium,
			Prompt:         "prompt for " + id,
			SourceRecordID: source,
			CorrectOption:  -1,
		},
	}
}

func TestRecordPersistsAcrossOpens(t *testing.T) {
	s, path := tempStore(t)

	err := s.Record(resultsWith(
		answer("q1", quizgen.WordSpelling, 1, true),
		answer("q2", quizgen.WordChoice, 2, false),
	))
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	reopened := Open(path, quietLogger())
	sum := reopened.Summary()
	if sum.TotalQuizzes != 1 {
		t.Errorf("expected 1 quiz after reopen, got %d", sum.TotalQuizzes)
	}
	if sum.TotalQuestions != 2 {
		t.Errorf("expected 2 questions, got %d", sum.TotalQuestions)
	}
	if sum.WrongQuestionCount != 1 {
		t.Errorf("expected 1 ledger entry, got %d", sum.WrongQuestionCount)
	}
}

func TestRecordDedupAcrossSessions(t *testing.T) {
	s, _ := tempStore(t)

	// Same (type, source record) missed in two separate sessions.
	for range 2 {
		err := s.Record(resultsWith(answer("q", quizgen.GrammarChoice, 7, false)))
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	entries := s.WrongQuestions(0, "")
	if len(entries) != 1 {
		t.Fatalf("expected 1 deduplicated entry, got %d", len(entries))
	}
	if entries[0].ErrorCount != 2 {
		t.Errorf("expected error count 2, got %d", entries[0].ErrorCount)
	}
}

func TestRecord_DedupIsCoarse(t *testing.T) {
	s, _ := tempStore(t)

	// Two different questions from the same record and type share a ledger
	// entry: the key is (type, source record), not the question ID.
	err := s.Record(resultsWith(
		answer("q1", quizgen.WordChoice, 3, false),
	))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	err = s.Record(resultsWith(
		answer("q2", quizgen.WordChoice, 3, false),
	))
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	entries := s.WrongQuestions(0, "")
	if len(entries) != 1 {
		t.Fatalf("expected coarse dedup to one entry, got %d", len(entries))
	}
	if entries[0].ErrorCount != 2 {
		t.Errorf("expected error count 2, got %d", entries[0].ErrorCount)
	}
}

func TestRecordCategoryCounters(t *testing.T) {
	s, _ := tempStore(t)

	err := s.Record(resultsWith(
		answer("q1", quizgen.WordSpelling, 1, true),
		answer("q2", quizgen.WordSpelling, 2, false),
	))
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	types := s.QuestionTypeStats()
	spelling := types[quizgen.WordSpelling]
	if spelling.Total != 2 || spelling.Correct != 1 {
		t.Errorf("unexpected spelling stats: %+v", spelling)
	}

	diff := s.DifficultyStats()
	medium := diff[quizgen.Medium]
	if medium.Total != 2 {
		t.Errorf("expected 2 medium answers, got %d", medium.Total)
	}
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, _ := tempStore(t)
	if got := s.Summary().TotalQuizzes; got != 0 {
		t.Errorf("expected empty store, got %d quizzes", got)
	}
}

func TestOpenCorruptFileBacksUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path, quietLogger())
	if got := s.Summary().TotalQuizzes; got != 0 {
		t.Errorf("corrupt file must yield an empty store, got %d quizzes", got)
	}

	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("expected corrupt backup file: %v", err)
	}
}

func TestPruneDropsOldEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progress.json")

	old := time.Now().Add(-90 * 24 * time.Hour)
	recent := time.Now().Add(-time.Hour)
	doc := Document{
		QuizHistory: []SessionSummary{
			{Timestamp: old, TotalQuestions: 5},
			{Timestamp: recent, TotalQuestions: 5},
		},
		WrongQuestions: []WrongQuestionEntry{
			{Question: quizgen.Question{QuestionID: "old"}, ErrorCount: 1, LastSeen: old},
			{Question: quizgen.Question{QuestionID: "new"}, ErrorCount: 1, LastSeen: recent},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path, quietLogger())
	if err := s.Prune(30 * 24 * time.Hour); err != nil {
		t.Fatalf("prune: %v", err)
	}

	if got := len(s.History()); got != 1 {
		t.Errorf("expected 1 history entry after prune, got %d", got)
	}
	entries := s.WrongQuestions(0, "")
	if len(entries) != 1 || entries[0].Question.QuestionID != "new" {
		t.Errorf("expected only the recent ledger entry, got %+v", entries)
	}
}
