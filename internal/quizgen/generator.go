package quizgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/lingiz/internal/corpus"
)

// errNotSynthesizable marks a record that cannot produce the requested
// question type. The slot is skipped, never the batch.
var errNotSynthesizable = errors.New("record cannot produce this question type")

// Generator turns learning records into quiz questions.
type Generator struct{}

// NewGenerator creates a question generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate synthesizes up to count questions from records. Each slot draws
// a question type uniformly from types (all four when empty), filters the
// records eligible for that type, and picks one through the shared selection
// pool. Slots with no eligible record, or whose synthesis fails, are
// skipped, so the result may be shorter than count. An empty record list
// yields an empty result.
func (g *Generator) Generate(records []corpus.LearningRecord, count int, types ...QuestionType) []Question {
	if len(records) == 0 || count <= 0 {
		return nil
	}
	if len(types) == 0 {
		types = AllTypes()
	}

	pool := newSelectionPool()
	questions := make([]Question, 0, count)

	for range count {
		qt := types[rand.IntN(len(types))]

		eligible := eligibleFor(records, qt)
		if len(eligible) == 0 {
			continue
		}

		record := pool.Pick(eligible)

		q, err := g.synthesize(record, qt)
		if err != nil {
			continue
		}
		questions = append(questions, q)
	}

	return questions
}

// eligibleFor filters records that can plausibly produce the given type.
// Word and translation choice accept records with only an original sentence;
// synthesis then decides whether the required annotation is present.
func eligibleFor(records []corpus.LearningRecord, qt QuestionType) []corpus.LearningRecord {
	return lo.Filter(records, func(r corpus.LearningRecord, _ int) bool {
		switch qt {
		case WordSpelling:
			return r.HasWords()
		case GrammarChoice:
			return r.HasGrammar()
		case WordChoice, TranslationChoice:
			return r.HasWords() || r.OriginalText != ""
		}
		return false
	})
}

func (g *Generator) synthesize(record corpus.LearningRecord, qt QuestionType) (Question, error) {
	switch qt {
	case WordSpelling:
		return g.wordSpelling(record)
	case GrammarChoice:
		return g.grammarChoice(record)
	case WordChoice:
		return g.wordChoice(record)
	case TranslationChoice:
		return g.translationChoice(record)
	}
	return Question{}, fmt.Errorf("unknown question type %q", qt)
}

func (g *Generator) wordSpelling(record corpus.LearningRecord) (Question, error) {
	word, meaning, err := pickPair(record.ImportantWords)
	if err != nil {
		return Question{}, err
	}

	return Question{
		QuestionID:     uuid.NewString(),
		Type:           WordSpelling,
		Difficulty:     wordDifficulty(word),
		Prompt:         fmt.Sprintf("Write the word matching this definition:\n\n%s", meaning),
		Explanation:    fmt.Sprintf("The correct answer is %s: %s", word, meaning),
		SourceRecordID: record.ID,
		Tags:           []string{"word", "spelling"},
		Context:        record.OriginalText,
		Answer:         strings.ToLower(strings.TrimSpace(word)),
		Hint:           spellingHint(word),
		CorrectOption:  -1,
	}, nil
}

func (g *Generator) grammarChoice(record corpus.LearningRecord) (Question, error) {
	sentence, explanation, err := pickPair(record.GrammarPoints)
	if err != nil {
		return Question{}, err
	}

	return Question{
		QuestionID:     uuid.NewString(),
		Type:           GrammarChoice,
		Difficulty:     sentenceDifficulty(sentence),
		Prompt:         fmt.Sprintf("Which explanation of the grammar in this sentence is correct?\n\n%s", sentence),
		Explanation:    explanation,
		SourceRecordID: record.ID,
		Tags:           []string{"grammar", "choice"},
		Context:        record.OriginalText,
		CorrectText:    explanation,
		CorrectOption:  -1,
		NeedsOptions:   true,
	}, nil
}

func (g *Generator) wordChoice(record corpus.LearningRecord) (Question, error) {
	word, meaning, err := pickPair(record.ImportantWords)
	if err != nil {
		return Question{}, err
	}

	return Question{
		QuestionID:     uuid.NewString(),
		Type:           WordChoice,
		Difficulty:     wordDifficulty(word),
		Prompt:         fmt.Sprintf("What does %q mean in this context?\n\n%s", word, record.OriginalText),
		Explanation:    fmt.Sprintf("%q means: %s", word, meaning),
		SourceRecordID: record.ID,
		Tags:           []string{"word", "meaning", "choice"},
		Context:        record.OriginalText,
		CorrectText:    meaning,
		CorrectOption:  -1,
		NeedsOptions:   true,
	}, nil
}

func (g *Generator) translationChoice(record corpus.LearningRecord) (Question, error) {
	if !record.HasTranslation() {
		return Question{}, errNotSynthesizable
	}

	return Question{
		QuestionID:     uuid.NewString(),
		Type:           TranslationChoice,
		Difficulty:     textDifficulty(record.OriginalText),
		Prompt:         fmt.Sprintf("Which is the correct translation?\n\n%s", record.OriginalText),
		Explanation:    fmt.Sprintf("Correct translation: %s", record.Translation),
		SourceRecordID: record.ID,
		Tags:           []string{"translation", "choice"},
		CorrectText:    record.Translation,
		CorrectOption:  -1,
		NeedsOptions:   true,
	}, nil
}

// pickPair returns one random key/value pair from m.
func pickPair(m map[string]string) (string, string, error) {
	if len(m) == 0 {
		return "", "", errNotSynthesizable
	}
	entries := lo.Entries(m)
	e := entries[rand.IntN(len(entries))]
	return e.Key, e.Value, nil
}

// spellingHint builds the length + first letter hint for a spelling question.
func spellingHint(word string) string {
	first, _ := utf8.DecodeRuneInString(word)
	return fmt.Sprintf("%d letters, starts with %s",
		utf8.RuneCountInString(word), strings.ToUpper(string(first)))
}
