// Package engine composes the corpus, question generator, distractor
// enhancer, and progress store into the operations the CLI drives.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingiz/internal/corpus"
	"github.com/abhisek/lingiz/internal/distractor"
	"github.com/abhisek/lingiz/internal/progress"
	"github.com/abhisek/lingiz/internal/quiz"
	"github.com/abhisek/lingiz/internal/quizgen"
	"github.com/abhisek/lingiz/internal/store"
)

// ErrNoEligibleRecords is returned when a nonzero quiz was requested but no
// record in the corpus could produce a single question.
var ErrNoEligibleRecords = errors.New("no learning records can produce questions")

// Engine wires the quiz pipeline together.
type Engine struct {
	source    corpus.Source
	generator *quizgen.Generator
	enhancer  *distractor.Enhancer
	progress  *progress.Store
	events    store.EventRepo
	log       *logrus.Logger
}

// New creates an engine. enhancer may be nil, in which case choice questions
// are completed with their deterministic fallback options. events may be nil
// to skip the operational event log.
func New(source corpus.Source, enhancer *distractor.Enhancer, prog *progress.Store, events store.EventRepo, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		source:    source,
		generator: quizgen.NewGenerator(),
		enhancer:  enhancer,
		progress:  prog,
		events:    events,
		log:       log,
	}
}

// Quiz is a finalized question batch ready for a session.
type Quiz struct {
	Questions []quizgen.Question

	// Shortfall is how many requested slots could not be filled because no
	// record was eligible or synthesis failed.
	Shortfall int
}

// GenerateQuiz synthesizes count questions from the corpus and runs the
// distractor enhancement pass. A corpus that yields fewer questions than
// requested produces a shorter quiz with Shortfall set; a corpus that yields
// none for a nonzero request returns ErrNoEligibleRecords.
func (e *Engine) GenerateQuiz(ctx context.Context, count int, types ...quizgen.QuestionType) (Quiz, error) {
	records, err := e.source.LoadAll(ctx)
	if err != nil {
		return Quiz{}, fmt.Errorf("load learning records: %w", err)
	}

	questions := e.generator.Generate(records, count, types...)
	if len(questions) == 0 && count > 0 {
		return Quiz{}, ErrNoEligibleRecords
	}
	if short := count - len(questions); short > 0 {
		e.log.WithFields(logrus.Fields{
			"requested": count,
			"generated": len(questions),
		}).Warn("corpus could not fill every quiz slot")
	}

	questions = e.enhance(ctx, questions)

	return Quiz{
		Questions: questions,
		Shortfall: count - len(questions),
	}, nil
}

// ReviewQuiz rebuilds up to count questions from the wrong-question ledger,
// most-missed first, optionally narrowed to one question type. Review
// questions reuse their stored options, so no enhancement pass runs. An
// empty ledger yields an empty quiz, not an error.
func (e *Engine) ReviewQuiz(count int, typeFilter quizgen.QuestionType) Quiz {
	questions := e.progress.GenerateReviewQuestions(count, typeFilter)
	return Quiz{Questions: questions}
}

// Progress exposes the underlying store for the stats and insights commands.
func (e *Engine) Progress() *progress.Store {
	return e.progress
}

// RecordResults persists a finished session: the progress document first,
// then a session event in the operational log. A failed event append is
// logged but never fails the session.
func (e *Engine) RecordResults(ctx context.Context, results quiz.Results, isReview bool) error {
	if err := e.progress.Record(results); err != nil {
		return err
	}

	if e.events != nil {
		err := e.events.AppendSession(ctx, store.SessionEvent{
			TotalQuestions:  results.TotalQuestions,
			Correct:         results.Correct,
			Wrong:           results.Wrong,
			Accuracy:        results.Accuracy,
			DurationSeconds: results.Duration.Seconds(),
			IsReview:        isReview,
		})
		if err != nil {
			e.log.WithError(err).Warn("failed to append session event")
		}
	}
	return nil
}

// enhance fills skeleton choice questions. Without an enhancer every
// skeleton takes its deterministic fallback option set immediately.
func (e *Engine) enhance(ctx context.Context, questions []quizgen.Question) []quizgen.Question {
	if e.enhancer != nil {
		return e.enhancer.Enhance(ctx, questions)
	}
	out := make([]quizgen.Question, len(questions))
	for i, q := range questions {
		if q.NeedsOptions {
			q = distractor.ApplyFallback(q)
		}
		out[i] = q
	}
	return out
}
