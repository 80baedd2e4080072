package corpus

import "context"

// LearningRecord is one previously translated sentence with its annotations,
// as captured by the overlay app during play.
type LearningRecord struct {
	// ID is the record's stable identifier within the notes file.
	ID int `json:"id"`

	// OriginalText is the source-language sentence as captured by OCR.
	OriginalText string `json:"original_text"`

	// Translation is the stored translation of OriginalText.
	Translation string `json:"translation"`

	// ImportantWords maps a word from the sentence to its meaning.
	ImportantWords map[string]string `json:"important_words"`

	// GrammarPoints maps a source sentence fragment to its explanation.
	GrammarPoints map[string]string `json:"grammar_points"`

	// LearnCount is how many times this sentence has been encountered.
	// Always >= 1.
	LearnCount int `json:"learn_count"`

	// Timestamp is the RFC3339 capture time.
	Timestamp string `json:"timestamp"`

	// Date is the capture date in YYYY-MM-DD form.
	Date string `json:"date"`
}

// HasWords reports whether the record carries word annotations.
func (r LearningRecord) HasWords() bool {
	return len(r.ImportantWords) > 0
}

// HasGrammar reports whether the record carries grammar annotations.
func (r LearningRecord) HasGrammar() bool {
	return len(r.GrammarPoints) > 0
}

// HasTranslation reports whether the record has both sides of a translation pair.
func (r LearningRecord) HasTranslation() bool {
	return r.OriginalText != "" && r.Translation != ""
}

// Usable reports whether any question type could be synthesized from the record.
func (r LearningRecord) Usable() bool {
	return r.HasWords() || r.HasGrammar() || r.HasTranslation()
}

// Source supplies learning records. Implementations are read-only:
// the quiz engine never writes back to the corpus.
type Source interface {
	// LoadAll returns every learning record in the corpus.
	LoadAll(ctx context.Context) ([]LearningRecord, error)
}
