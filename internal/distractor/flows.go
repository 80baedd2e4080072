package distractor

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/lingiz/internal/quizgen"
)

// option mirrors the JSON shape the model returns for a single choice.
type option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// optionsOutput is the raw model response before shape checks.
type optionsOutput struct {
	Options []option `json:"options"`
}

// flow bundles the type-specific parts of enhancement: how to ask the model
// for distractors and what to substitute when it fails. The shuffle and
// correct-index resolution are shared across all flows.
type flow struct {
	buildPrompt func(q quizgen.Question) string
	fallback    func(q quizgen.Question) []option
}

// flowFor returns the enhancement flow for a choice question type,
// or false for types that never carry options.
func flowFor(t quizgen.QuestionType) (flow, bool) {
	switch t {
	case quizgen.GrammarChoice:
		return flow{buildPrompt: grammarPrompt, fallback: grammarFallback}, true
	case quizgen.WordChoice:
		return flow{buildPrompt: wordPrompt, fallback: wordFallback}, true
	case quizgen.TranslationChoice:
		return flow{buildPrompt: translationPrompt, fallback: translationFallback}, true
	}
	return flow{}, false
}

func grammarPrompt(q quizgen.Question) string {
	return fmt.Sprintf(`Write 3 incorrect distractor options and 1 correct option for this grammar question.

Sentence: %s
Correct explanation: %s

The distractors must look plausible but be wrong, each under 50 words.
The correct option's text must be exactly the correct explanation above.`,
		q.Context, q.CorrectText)
}

func wordPrompt(q quizgen.Question) string {
	return fmt.Sprintf(`Write 3 incorrect distractor options and 1 correct option for this word-meaning question.

Question: %s
Correct meaning: %s

The distractors must be related or similar-looking meanings that are wrong, each under 30 words.
The correct option's text must be exactly the correct meaning above.`,
		q.Prompt, q.CorrectText)
}

func translationPrompt(q quizgen.Question) string {
	return fmt.Sprintf(`Write 3 incorrect distractor options and 1 correct option for this translation question.

Source sentence: %s
Correct translation: %s

The distractors must read naturally but contain meaning shifts, grammar errors, or awkward phrasing.
The correct option's text must be exactly the correct translation above.`,
		q.Prompt, q.CorrectText)
}

// Fallback option sets keep a failed enhancement usable: one correct option
// plus three generic fillers for the question type.

func grammarFallback(q quizgen.Question) []option {
	return []option{
		{Text: q.CorrectText, IsCorrect: true},
		{Text: "A simple subject-verb-object sentence with no special structure."},
		{Text: "The sentence uses the passive voice to emphasize the receiver of the action."},
		{Text: "The sentence contains a relative clause modifying the preceding noun."},
	}
}

func wordFallback(q quizgen.Question) []option {
	return []option{
		{Text: q.CorrectText, IsCorrect: true},
		{Text: "An adverb describing when something happens."},
		{Text: "A noun naming a place."},
		{Text: "A verb describing a physical action."},
	}
}

func translationFallback(q quizgen.Question) []option {
	return []option{
		{Text: q.CorrectText, IsCorrect: true},
		{Text: "A line about the game's backstory."},
		{Text: "The characters are discussing an important event."},
		{Text: "The sentence expresses a feeling or attitude."},
	}
}

// ApplyFallback completes a skeleton question with its deterministic
// fallback options, shuffled. Used when no LLM provider is configured.
func ApplyFallback(q quizgen.Question) quizgen.Question {
	fl, ok := flowFor(q.Type)
	if !ok {
		return q
	}

	opts := fl.fallback(q)
	rand.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})

	q.Options = make([]string, len(opts))
	q.CorrectOption = -1
	for i, o := range opts {
		q.Options[i] = o.Text
		if o.IsCorrect {
			q.CorrectOption = i
		}
	}
	q.NeedsOptions = false
	return q
}
