package progress

import (
	"math"

	"github.com/samber/lo"

	"github.com/abhisek/lingiz/internal/quizgen"
)

const (
	weakThreshold   = 60.0
	strongThreshold = 80.0

	// trendWindow is the number of sessions needed before a trend is
	// reported: the last five are compared against the five before them.
	trendWindow = 10
)

// Summary is the aggregated analytics view over the whole document.
type Summary struct {
	TotalQuizzes    int     `json:"total_quizzes"`
	TotalQuestions  int     `json:"total_questions"`
	TotalCorrect    int     `json:"total_correct"`
	OverallAccuracy float64 `json:"overall_accuracy"`

	// RecentAccuracy averages the last 10 session accuracies, 0 when empty.
	RecentAccuracy float64 `json:"recent_accuracy"`

	// ImprovementTrend is avg(last 5) - avg(previous 5) session accuracy.
	// Zero with TrendAvailable false until 10 sessions exist.
	ImprovementTrend float64 `json:"improvement_trend"`
	TrendAvailable   bool    `json:"trend_available"`

	// WeakAreas and StrongAreas list category labels below 60% and above
	// 80% accuracy, difficulties first then question types, each group in
	// its canonical order. Unattempted categories are skipped.
	WeakAreas   []string `json:"weak_areas"`
	StrongAreas []string `json:"strong_areas"`

	WrongQuestionCount int `json:"wrong_question_count"`
}

// Summary computes the analytics snapshot from the in-memory document.
func (s *Store) Summary() Summary {
	history := s.doc.QuizHistory

	sum := Summary{
		TotalQuizzes:       len(history),
		TotalQuestions:     lo.SumBy(history, func(h SessionSummary) int { return h.TotalQuestions }),
		TotalCorrect:       lo.SumBy(history, func(h SessionSummary) int { return h.Correct }),
		WrongQuestionCount: len(s.doc.WrongQuestions),
	}

	if sum.TotalQuestions > 0 {
		sum.OverallAccuracy = round1(float64(sum.TotalCorrect) / float64(sum.TotalQuestions) * 100)
	}

	if len(history) > 0 {
		recent := history[max(0, len(history)-10):]
		sum.RecentAccuracy = round1(meanAccuracy(recent))
	}

	if len(history) >= trendWindow {
		last := history[len(history)-5:]
		prev := history[len(history)-10 : len(history)-5]
		sum.ImprovementTrend = round1(meanAccuracy(last) - meanAccuracy(prev))
		sum.TrendAvailable = true
	}

	sum.WeakAreas, sum.StrongAreas = s.classifyAreas()
	return sum
}

// classifyAreas buckets every attempted category by accuracy. Iteration
// follows the canonical orders so output is deterministic.
func (s *Store) classifyAreas() (weak, strong []string) {
	weak = []string{}
	strong = []string{}

	consider := func(label string, stats CategoryStats) {
		if stats.Total == 0 {
			return
		}
		switch acc := stats.Accuracy(); {
		case acc < weakThreshold:
			weak = append(weak, label)
		case acc > strongThreshold:
			strong = append(strong, label)
		}
	}

	for _, d := range quizgen.AllDifficulties() {
		consider(string(d), s.doc.DifficultyStats[d])
	}
	for _, t := range quizgen.AllTypes() {
		consider(t.Label(), s.doc.QuestionTypeStats[t])
	}
	return weak, strong
}

// DifficultyStats returns a copy of the per-difficulty counters.
func (s *Store) DifficultyStats() map[quizgen.Difficulty]CategoryStats {
	out := make(map[quizgen.Difficulty]CategoryStats, len(s.doc.DifficultyStats))
	for k, v := range s.doc.DifficultyStats {
		out[k] = v
	}
	return out
}

// QuestionTypeStats returns a copy of the per-type counters.
func (s *Store) QuestionTypeStats() map[quizgen.QuestionType]CategoryStats {
	out := make(map[quizgen.QuestionType]CategoryStats, len(s.doc.QuestionTypeStats))
	for k, v := range s.doc.QuestionTypeStats {
		out[k] = v
	}
	return out
}

// History returns a copy of the session history, oldest first.
func (s *Store) History() []SessionSummary {
	return append([]SessionSummary(nil), s.doc.QuizHistory...)
}

func meanAccuracy(sessions []SessionSummary) float64 {
	if len(sessions) == 0 {
		return 0
	}
	total := lo.SumBy(sessions, func(h SessionSummary) float64 { return h.Accuracy })
	return total / float64(len(sessions))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
