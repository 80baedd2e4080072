package progress

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/lingiz/internal/quizgen"
)

// WrongQuestions returns ledger entries ordered by descending error count,
// ties kept in insertion order. typeFilter narrows to one question type when
// non-empty; limit <= 0 means no cap.
func (s *Store) WrongQuestions(limit int, typeFilter quizgen.QuestionType) []WrongQuestionEntry {
	entries := append([]WrongQuestionEntry(nil), s.doc.WrongQuestions...)
	if typeFilter != "" {
		entries = lo.Filter(entries, func(e WrongQuestionEntry, _ int) bool {
			return e.Question.Type == typeFilter
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ErrorCount > entries[j].ErrorCount
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// GenerateReviewQuestions rebuilds up to count questions from the ledger,
// most-missed first, optionally narrowed to one question type. Each question
// gets a fresh ID, review metadata, and a hint recalling how often it has
// been missed. Choice questions keep their previously enhanced options, so
// no LLM round trip is needed for review.
func (s *Store) GenerateReviewQuestions(count int, typeFilter quizgen.QuestionType) []quizgen.Question {
	entries := s.WrongQuestions(count, typeFilter)

	questions := make([]quizgen.Question, 0, len(entries))
	for _, e := range entries {
		q := e.Question.Clone()
		q.QuestionID = uuid.NewString()
		q.IsReview = true
		q.OriginalErrorCount = e.ErrorCount
		q.ReviewHint = reviewHint(q.Type, e.ErrorCount)
		questions = append(questions, q)
	}
	return questions
}

func reviewHint(t quizgen.QuestionType, errorCount int) string {
	times := "once"
	if errorCount > 1 {
		times = fmt.Sprintf("%d times", errorCount)
	}
	switch t {
	case quizgen.WordSpelling:
		return fmt.Sprintf("You have misspelled this word %s. Take it slowly.", times)
	case quizgen.GrammarChoice:
		return fmt.Sprintf("This grammar point has tripped you up %s. Reread the sentence first.", times)
	case quizgen.WordChoice:
		return fmt.Sprintf("You have missed this word's meaning %s.", times)
	case quizgen.TranslationChoice:
		return fmt.Sprintf("You have missed this translation %s. Compare the options carefully.", times)
	}
	return fmt.Sprintf("You have missed this question %s.", times)
}

// ReviewStats summarizes the wrong-question ledger for the stats view.
type ReviewStats struct {
	Total           int                          `json:"total"`
	ByType          map[quizgen.QuestionType]int `json:"by_type"`
	ByDifficulty    map[quizgen.Difficulty]int   `json:"by_difficulty"`
	MostProblematic []WrongQuestionEntry         `json:"most_problematic"`
}

// ReviewStats aggregates the ledger. MostProblematic holds the top 5 entries
// by error count.
func (s *Store) ReviewStats() ReviewStats {
	return ReviewStats{
		Total: len(s.doc.WrongQuestions),
		ByType: lo.CountValuesBy(s.doc.WrongQuestions, func(e WrongQuestionEntry) quizgen.QuestionType {
			return e.Question.Type
		}),
		ByDifficulty: lo.CountValuesBy(s.doc.WrongQuestions, func(e WrongQuestionEntry) quizgen.Difficulty {
			return e.Question.Difficulty
		}),
		MostProblematic: s.WrongQuestions(5, ""),
	}
}
