package engine

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingiz/internal/corpus"
	"github.com/abhisek/lingiz/internal/progress"
	"github.com/abhisek/lingiz/internal/quiz"
	"github.com/abhisek/lingiz/internal/quizgen"
)

// stubSource serves a fixed record slice.
type stubSource struct {
	records []corpus.LearningRecord
	err     error
}

func (s stubSource) LoadAll(context.Context) ([]corpus.LearningRecord, error) {
	return s.records, s.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func tempProgress(t *testing.T) *progress.Store {
	t.Helper()
	return progress.Open(filepath.Join(t.TempDir(), "progress.json"), quietLogger())
}

func richRecords() []corpus.LearningRecord {
	return []corpus.LearningRecord{
		{
			ID:           1,
			OriginalText: "Der Wind weht vom Berg herab.",
			Translation:  "The wind blows down from the mountain.",
			ImportantWords: map[string]string{
				"Wind": "wind",
				"Berg": "mountain",
			},
			GrammarPoints: map[string]string{
				"vom Berg herab": "preposition contraction von + dem",
			},
			LearnCount: 1,
		},
		{
			ID:           2,
			OriginalText: "Die Reisende kauft Brot.",
			Translation:  "The traveler buys bread.",
			ImportantWords: map[string]string{
				"Reisende": "traveler",
				"Brot":     "bread",
			},
			LearnCount: 2,
		},
	}
}

func TestGenerateQuizEmptyCorpus(t *testing.T) {
	eng := New(stubSource{}, nil, tempProgress(t), nil, quietLogger())

	_, err := eng.GenerateQuiz(context.Background(), 5)
	if !errors.Is(err, ErrNoEligibleRecords) {
		t.Fatalf("expected ErrNoEligibleRecords, got %v", err)
	}
}

func TestGenerateQuizSourceError(t *testing.T) {
	eng := New(stubSource{err: errors.New("disk gone")}, nil, tempProgress(t), nil, quietLogger())

	_, err := eng.GenerateQuiz(context.Background(), 5)
	if err == nil || errors.Is(err, ErrNoEligibleRecords) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestGenerateQuizShortfall(t *testing.T) {
	eng := New(stubSource{records: richRecords()}, nil, tempProgress(t), nil, quietLogger())

	q, err := eng.GenerateQuiz(context.Background(), 50)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(q.Questions) == 0 {
		t.Fatal("expected some questions")
	}
	if q.Shortfall != 50-len(q.Questions) {
		t.Errorf("shortfall %d does not match %d generated of 50", q.Shortfall, len(q.Questions))
	}
}

func TestGenerateQuizNilEnhancerUsesFallback(t *testing.T) {
	eng := New(stubSource{records: richRecords()}, nil, tempProgress(t), nil, quietLogger())

	q, err := eng.GenerateQuiz(context.Background(), 6)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, question := range q.Questions {
		if question.NeedsOptions {
			t.Errorf("question %s still needs options", question.QuestionID)
		}
		if question.Type == quizgen.WordSpelling {
			continue
		}
		if len(question.Options) == 0 {
			t.Errorf("choice question %s has no options", question.QuestionID)
		}
		if question.CorrectOption < 0 || question.CorrectOption >= len(question.Options) {
			t.Errorf("question %s has out-of-range correct option %d", question.QuestionID, question.CorrectOption)
		}
	}
}

func TestReviewQuizEmptyLedger(t *testing.T) {
	eng := New(stubSource{}, nil, tempProgress(t), nil, quietLogger())

	q := eng.ReviewQuiz(5, "")
	if len(q.Questions) != 0 {
		t.Errorf("expected empty review quiz, got %d questions", len(q.Questions))
	}
}

func TestRecordResultsUpdatesProgress(t *testing.T) {
	prog := tempProgress(t)
	eng := New(stubSource{records: richRecords()}, nil, prog, nil, quietLogger())

	results := quiz.Results{
		TotalQuestions: 2,
		Correct:        1,
		Wrong:          1,
		Accuracy:       50.0,
		Duration:       30 * time.Second,
		Finished: true,
		Answers: map[string]quiz.AnswerRecord{
			"a": {
				Question:  quizgen.Question{QuestionID: "a", Type: quizgen.WordChoice, Difficulty: quizgen.Easy, SourceRecordID: 1},
				IsCorrect: true,
			},
			"b": {
				Question:  quizgen.Question{QuestionID: "b", Type: quizgen.WordSpelling, Difficulty: quizgen.Hard, SourceRecordID: 2},
				IsCorrect: false,
			},
		},
	}
	if err := eng.RecordResults(context.Background(), results, false); err != nil {
		t.Fatalf("record: %v", err)
	}

	summary := prog.Summary()
	if summary.TotalQuizzes != 1 || summary.TotalQuestions != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.WrongQuestionCount != 1 {
		t.Errorf("expected 1 ledger entry, got %d", summary.WrongQuestionCount)
	}
}
