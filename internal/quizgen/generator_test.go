package quizgen

import (
	"strings"
	"testing"

	"github.com/abhisek/lingiz/internal/corpus"
)

func sampleRecords() []corpus.LearningRecord {
	return []corpus.LearningRecord{
		{
			ID:           1,
			OriginalText: "Willkommen in Mondstadt, Reisender!",
			Translation:  "Welcome to Mondstadt, traveler!",
			ImportantWords: map[string]string{
				"Mondstadt": "the city of freedom",
			},
			GrammarPoints: map[string]string{
				"Willkommen in + Dativ": "greeting with the dative case after 'in'",
			},
			LearnCount: 1,
		},
		{
			ID:           2,
			OriginalText: "Die Reise beginnt morgen.",
			Translation:  "The journey begins tomorrow.",
			ImportantWords: map[string]string{
				"Reise": "journey",
			},
			LearnCount: 2,
		},
	}
}

func TestGenerateEmptyRecords(t *testing.T) {
	g := NewGenerator()
	if got := g.Generate(nil, 5); got != nil {
		t.Errorf("expected nil questions for empty records, got %d", len(got))
	}
}

func TestGenerateZeroCount(t *testing.T) {
	g := NewGenerator()
	if got := g.Generate(sampleRecords(), 0); got != nil {
		t.Errorf("expected nil questions for count 0, got %d", len(got))
	}
}

func TestGenerateWordSpelling(t *testing.T) {
	g := NewGenerator()
	questions := g.Generate(sampleRecords(), 10, WordSpelling)

	if len(questions) == 0 {
		t.Fatal("expected at least one spelling question")
	}

	for _, q := range questions {
		if q.Type != WordSpelling {
			t.Fatalf("expected type %q, got %q", WordSpelling, q.Type)
		}
		if q.Answer != strings.ToLower(q.Answer) {
			t.Errorf("answer %q is not lowercase", q.Answer)
		}
		if q.NeedsOptions {
			t.Error("spelling questions must not need options")
		}
		if q.Hint == "" {
			t.Error("expected a spelling hint")
		}
		if q.QuestionID == "" {
			t.Error("expected a question ID")
		}
		if q.SourceRecordID != 1 && q.SourceRecordID != 2 {
			t.Errorf("unexpected source record ID %d", q.SourceRecordID)
		}
	}
}

func TestGenerateChoiceSkeletons(t *testing.T) {
	g := NewGenerator()

	for _, qt := range []QuestionType{GrammarChoice, WordChoice, TranslationChoice} {
		questions := g.Generate(sampleRecords(), 5, qt)
		if len(questions) == 0 {
			t.Fatalf("expected questions for type %q", qt)
		}
		for _, q := range questions {
			if !q.NeedsOptions {
				t.Errorf("%s: expected a skeleton needing options", qt)
			}
			if q.CorrectText == "" {
				t.Errorf("%s: expected CorrectText to be set", qt)
			}
			if q.CorrectOption != -1 {
				t.Errorf("%s: expected CorrectOption -1, got %d", qt, q.CorrectOption)
			}
		}
	}
}

func TestGenerateGrammarRequiresAnnotations(t *testing.T) {
	g := NewGenerator()

	// Only record 1 has grammar points.
	questions := g.Generate(sampleRecords(), 8, GrammarChoice)
	for _, q := range questions {
		if q.SourceRecordID != 1 {
			t.Errorf("grammar question drawn from record %d which has no grammar points", q.SourceRecordID)
		}
	}
}

func TestGenerateSkipsImpossibleSlots(t *testing.T) {
	records := []corpus.LearningRecord{
		{ID: 3, OriginalText: "Hallo", LearnCount: 1}, // no annotations, no translation
	}

	g := NewGenerator()
	questions := g.Generate(records, 4, GrammarChoice)
	if len(questions) != 0 {
		t.Errorf("expected 0 questions from an unusable record, got %d", len(questions))
	}
}

func TestSpellingHint(t *testing.T) {
	hint := spellingHint("Reise")
	if hint != "5 letters, starts with R" {
		t.Errorf("unexpected hint %q", hint)
	}
}

func TestWordDifficulty(t *testing.T) {
	tests := []struct {
		word string
		want Difficulty
	}{
		{"Tag", Easy},
		{"Reise", Medium},
		{"Geschwindigkeit", Hard},
	}
	for _, tt := range tests {
		if got := wordDifficulty(tt.word); got != tt.want {
			t.Errorf("wordDifficulty(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	q := Question{
		QuestionID: "q1",
		Tags:       []string{"word"},
		Options:    []string{"a", "b"},
	}
	c := q.Clone()
	c.Tags[0] = "changed"
	c.Options[0] = "changed"

	if q.Tags[0] != "word" || q.Options[0] != "a" {
		t.Error("Clone shares backing arrays with the original")
	}
}

func TestParseType(t *testing.T) {
	got, err := ParseType("grammar_choice")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != GrammarChoice {
		t.Errorf("expected GrammarChoice, got %q", got)
	}

	if _, err := ParseType("essay"); err == nil {
		t.Error("expected an error for an unknown type")
	}
}

func TestSpellingAnswerIsTrimmed(t *testing.T) {
	g := NewGenerator()
	records := []corpus.LearningRecord{{
		ID:             1,
		OriginalText:   "Die Rose",
		Translation:    "The rose",
		ImportantWords: map[string]string{" Rose ": "a flower"},
		LearnCount:     1,
	}}

	questions := g.Generate(records, 1, WordSpelling)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if got := questions[0].Answer; got != "rose" {
		t.Errorf("expected answer %q, got %q", "rose", got)
	}
}

func TestTextDifficulty(t *testing.T) {
	tests := []struct {
		words int
		want  Difficulty
	}{
		{5, Easy},
		{6, Medium},
		{10, Medium},
		{11, Hard},
	}
	for _, tt := range tests {
		text := strings.Repeat("wort ", tt.words)
		if got := textDifficulty(text); got != tt.want {
			t.Errorf("textDifficulty(%d words) = %q, want %q", tt.words, got, tt.want)
		}
	}
}
