package quizgen

import (
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/abhisek/lingiz/internal/corpus"
)

// selectionPool picks records at random while biasing against repeats.
// The used set is shared across all question types in one generation batch,
// so a record drawn for a spelling question is avoided for a later grammar
// question too. Once every eligible record for a draw has been used, the
// draw falls back to the full eligible set and repeats become permitted.
type selectionPool struct {
	used map[int]bool
}

func newSelectionPool() *selectionPool {
	return &selectionPool{used: make(map[int]bool)}
}

// Pick returns one record from eligible, preferring records not yet used
// in this batch. eligible must be non-empty.
func (p *selectionPool) Pick(eligible []corpus.LearningRecord) corpus.LearningRecord {
	fresh := lo.Filter(eligible, func(r corpus.LearningRecord, _ int) bool {
		return !p.used[r.ID]
	})
	if len(fresh) == 0 {
		// Pool exhausted for this draw: fall back to the full eligible set.
		fresh = eligible
	}

	r := fresh[rand.IntN(len(fresh))]
	p.used[r.ID] = true
	return r
}
