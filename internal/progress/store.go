package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingiz/internal/quiz"
	"github.com/abhisek/lingiz/internal/quizgen"
)

// Store owns the progress document and guarantees read-your-writes: every
// mutation updates the in-memory copy and rewrites the whole file. It
// assumes a single writer; the app drives one quiz session at a time.
type Store struct {
	path string
	log  *logrus.Logger
	doc  Document
}

// Open loads the progress document at path, or starts from the empty
// default when the file is missing, empty, or corrupt. A corrupt file is
// preserved under a .corrupt side name before it would be overwritten.
func Open(path string, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{path: path, log: log, doc: defaultDocument()}
	s.load()
	return s
}

func (s *Store) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).Warn("failed to read progress file, starting empty")
		}
		return
	}
	if len(raw) == 0 {
		return
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.backupCorrupt(err)
		return
	}

	// Repair maps that predate a category or were written by hand.
	if doc.DifficultyStats == nil {
		doc.DifficultyStats = defaultDocument().DifficultyStats
	}
	if doc.QuestionTypeStats == nil {
		doc.QuestionTypeStats = defaultDocument().QuestionTypeStats
	}
	s.doc = doc
}

// backupCorrupt moves an unreadable progress file aside so it is never
// silently discarded.
func (s *Store) backupCorrupt(cause error) {
	backup := s.path + ".corrupt"
	if err := os.Rename(s.path, backup); err != nil {
		s.log.WithError(err).Warn("failed to back up corrupt progress file")
	} else {
		s.log.WithError(cause).Warnf("progress file was corrupt, preserved as %s", filepath.Base(backup))
	}
}

// save rewrites the whole document atomically: write to a temp file in the
// same directory, then rename over the target.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write progress document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp progress file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}

// Record folds a finished session into the document: a history entry,
// per-category counters for every answer, and a ledger upsert for every
// wrong answer. The document is persisted before returning.
func (s *Store) Record(results quiz.Results) error {
	now := time.Now()

	s.doc.QuizHistory = append(s.doc.QuizHistory, SessionSummary{
		Timestamp:       now,
		TotalQuestions:  results.TotalQuestions,
		Correct:         results.Correct,
		Wrong:           results.Wrong,
		Accuracy:        results.Accuracy,
		DurationSeconds: results.Duration.Seconds(),
	})

	for _, rec := range results.Answers {
		q := rec.Question

		ds := s.doc.DifficultyStats[q.Difficulty]
		ds.Total++
		if rec.IsCorrect {
			ds.Correct++
		}
		s.doc.DifficultyStats[q.Difficulty] = ds

		ts := s.doc.QuestionTypeStats[q.Type]
		ts.Total++
		if rec.IsCorrect {
			ts.Correct++
		}
		s.doc.QuestionTypeStats[q.Type] = ts

		if !rec.IsCorrect {
			s.upsertWrong(q, rec, now)
		}
	}

	if err := s.save(); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// upsertWrong merges a miss into the ledger under the (type, source record)
// identity key.
func (s *Store) upsertWrong(q quizgen.Question, rec quiz.AnswerRecord, now time.Time) {
	for i := range s.doc.WrongQuestions {
		existing := &s.doc.WrongQuestions[i]
		if existing.Question.Type == q.Type && existing.Question.SourceRecordID == q.SourceRecordID {
			existing.ErrorCount++
			existing.LastSeen = now
			return
		}
	}

	s.doc.WrongQuestions = append(s.doc.WrongQuestions, WrongQuestionEntry{
		Question:   q.Clone(),
		LastAnswer: describeAnswer(rec.Answer, q),
		ErrorCount: 1,
		LastSeen:   now,
	})
}

// describeAnswer renders the learner's answer for the ledger.
func describeAnswer(ans quiz.Answer, q quizgen.Question) string {
	if q.Type == quizgen.WordSpelling {
		return ans.Text
	}
	if ans.Option >= 0 && ans.Option < len(q.Options) {
		return q.Options[ans.Option]
	}
	return ""
}

// Prune drops history entries and ledger entries older than retention.
// The overlay app calls this opportunistically; losing an old entry only
// means a question stops appearing in review.
func (s *Store) Prune(retention time.Duration) error {
	cutoff := time.Now().Add(-retention)

	history := s.doc.QuizHistory[:0]
	for _, h := range s.doc.QuizHistory {
		if h.Timestamp.After(cutoff) {
			history = append(history, h)
		}
	}
	s.doc.QuizHistory = history

	wrong := s.doc.WrongQuestions[:0]
	for _, w := range s.doc.WrongQuestions {
		if w.LastSeen.After(cutoff) {
			wrong = append(wrong, w)
		}
	}
	s.doc.WrongQuestions = wrong

	if err := s.save(); err != nil {
		return fmt.Errorf("prune progress: %w", err)
	}
	return nil
}
