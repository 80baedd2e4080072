package quizgen

import "fmt"

// QuestionType identifies the four kinds of questions the synthesizer produces.
type QuestionType string

const (
	// WordSpelling asks the learner to type a word given its meaning.
	WordSpelling QuestionType = "word_spelling"

	// GrammarChoice asks for the correct explanation of a sentence's grammar.
	GrammarChoice QuestionType = "grammar_choice"

	// WordChoice asks for the correct meaning of a word in context.
	WordChoice QuestionType = "word_choice"

	// TranslationChoice asks for the correct translation of a sentence.
	TranslationChoice QuestionType = "translation_choice"
)

// AllTypes returns every question type in a fixed order.
func AllTypes() []QuestionType {
	return []QuestionType{WordSpelling, GrammarChoice, WordChoice, TranslationChoice}
}

// ParseType converts a CLI flag value into a QuestionType.
func ParseType(s string) (QuestionType, error) {
	for _, t := range AllTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown question type %q (valid: word_spelling, grammar_choice, word_choice, translation_choice)", s)
}

// IsChoice reports whether the type is answered by picking an option index.
func (t QuestionType) IsChoice() bool {
	switch t {
	case GrammarChoice, WordChoice, TranslationChoice:
		return true
	}
	return false
}

// Label returns a human-readable name for stats and insights output.
func (t QuestionType) Label() string {
	switch t {
	case WordSpelling:
		return "word spelling"
	case GrammarChoice:
		return "grammar choice"
	case WordChoice:
		return "word meaning"
	case TranslationChoice:
		return "translation choice"
	}
	return string(t)
}

// Difficulty buckets questions for analytics.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns every difficulty in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Question is a single quiz question. Choice-type questions start as
// skeletons (NeedsOptions true, CorrectText carrying the known answer) and
// are completed by the distractor enhancer, which fills Options and
// CorrectOption.
type Question struct {
	QuestionID     string       `json:"question_id"`
	Type           QuestionType `json:"question_type"`
	Difficulty     Difficulty   `json:"difficulty"`
	Prompt         string       `json:"prompt"`
	Explanation    string       `json:"explanation"`
	SourceRecordID int          `json:"source_record_id"`
	Tags           []string     `json:"tags"`

	// Context is a supporting sentence shown alongside the prompt.
	Context string `json:"context,omitempty"`

	// Answer is the expected lowercase word for WordSpelling questions.
	Answer string `json:"answer,omitempty"`

	// Hint gives the word length and first letter for WordSpelling questions.
	Hint string `json:"hint,omitempty"`

	// CorrectText is the known correct option text for choice questions.
	// Set at synthesis; the enhancer places it among the distractors.
	CorrectText string `json:"correct_text,omitempty"`

	// Options holds exactly 4 entries once enhancement completes.
	Options []string `json:"options,omitempty"`

	// CorrectOption indexes Options. -1 until enhancement completes.
	CorrectOption int `json:"correct_option"`

	// NeedsOptions marks a skeleton awaiting distractor enhancement.
	NeedsOptions bool `json:"needs_options"`

	// Review metadata, set only on questions regenerated from the
	// wrong-question ledger.
	IsReview           bool   `json:"is_review,omitempty"`
	OriginalErrorCount int    `json:"original_error_count,omitempty"`
	ReviewHint         string `json:"review_hint,omitempty"`
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	c := q
	if q.Tags != nil {
		c.Tags = append([]string(nil), q.Tags...)
	}
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	return c
}
