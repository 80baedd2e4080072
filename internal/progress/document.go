package progress

import (
	"time"

	"github.com/abhisek/lingiz/internal/quizgen"
)

// CategoryStats is a monotonically growing total/correct counter pair.
type CategoryStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Accuracy returns the category accuracy in percent, 0 when unattempted.
func (c CategoryStats) Accuracy() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Total) * 100
}

// SessionSummary is one quiz history entry.
type SessionSummary struct {
	Timestamp       time.Time `json:"timestamp"`
	TotalQuestions  int       `json:"total_questions"`
	Correct         int       `json:"correct_answers"`
	Wrong           int       `json:"wrong_answers"`
	Accuracy        float64   `json:"accuracy"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// WrongQuestionEntry is one deduplicated ledger entry. Entries are keyed by
// (question type, source record ID): a second miss of the same pairing
// increments ErrorCount instead of inserting.
type WrongQuestionEntry struct {
	Question   quizgen.Question `json:"question"`
	LastAnswer string           `json:"last_answer,omitempty"`
	ErrorCount int              `json:"error_count"`
	LastSeen   time.Time        `json:"last_seen"`
}

// Document is the persisted progress state, one JSON file rewritten in full
// on every mutation.
type Document struct {
	QuizHistory       []SessionSummary                       `json:"quiz_history"`
	WrongQuestions    []WrongQuestionEntry                   `json:"wrong_questions"`
	DifficultyStats   map[quizgen.Difficulty]CategoryStats   `json:"difficulty_stats"`
	QuestionTypeStats map[quizgen.QuestionType]CategoryStats `json:"question_type_stats"`
}

// defaultDocument returns the empty shape a fresh store starts from.
func defaultDocument() Document {
	doc := Document{
		QuizHistory:       []SessionSummary{},
		WrongQuestions:    []WrongQuestionEntry{},
		DifficultyStats:   make(map[quizgen.Difficulty]CategoryStats, 3),
		QuestionTypeStats: make(map[quizgen.QuestionType]CategoryStats, 4),
	}
	for _, d := range quizgen.AllDifficulties() {
		doc.DifficultyStats[d] = CategoryStats{}
	}
	for _, t := range quizgen.AllTypes() {
		doc.QuestionTypeStats[t] = CategoryStats{}
	}
	return doc
}
