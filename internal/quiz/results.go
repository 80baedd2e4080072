package quiz

import (
	"math"
	"time"
)

// Results summarizes a session for the progress store and the UI.
type Results struct {
	TotalQuestions int
	Correct        int
	Wrong          int

	// Accuracy is Correct/TotalQuestions*100 rounded to one decimal,
	// 0 for an empty session.
	Accuracy float64

	// Duration is end minus start. Zero with Finished false when the
	// session was never finished.
	Duration time.Duration
	Finished bool

	StartedAt  time.Time
	FinishedAt time.Time

	// Answers maps question ID to its scored record.
	Answers map[string]AnswerRecord
}

// Results computes the session summary. It can be called at any point;
// duration is only populated after Finish.
func (s *Session) Results() Results {
	total := len(s.questions)
	correct := s.score

	accuracy := 0.0
	if total > 0 {
		accuracy = math.Round(float64(correct)/float64(total)*1000) / 10
	}

	r := Results{
		TotalQuestions: total,
		Correct:        correct,
		Wrong:          total - correct,
		Accuracy:       accuracy,
		StartedAt:      s.startedAt,
		Answers:        make(map[string]AnswerRecord, len(s.answers)),
	}

	for id, rec := range s.answers {
		r.Answers[id] = rec
	}

	if !s.finishedAt.IsZero() {
		r.Finished = true
		r.FinishedAt = s.finishedAt
		r.Duration = s.finishedAt.Sub(s.startedAt)
	}

	return r
}
