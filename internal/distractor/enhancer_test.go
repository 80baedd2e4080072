package distractor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/lingiz/internal/llm"
	"github.com/abhisek/lingiz/internal/quizgen"
)

func skeleton(id string, qt quizgen.QuestionType, correct string) quizgen.Question {
	return quizgen.Question{
		QuestionID:    id,
		Type:          qt,
		Prompt:        "Which is correct?",
		Context:       "Die Reise beginnt morgen.",
		CorrectText:   correct,
		CorrectOption: -1,
		NeedsOptions:  true,
	}
}

func validOptionsJSON(correct string) json.RawMessage {
	out := optionsOutput{Options: []option{
		{Text: correct, IsCorrect: true},
		{Text: "wrong one"},
		{Text: "wrong two"},
		{Text: "wrong three"},
	}}
	data, _ := json.Marshal(out)
	return data
}

func TestEnhanceFillsOptions(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Content: validOptionsJSON("journey")},
	)
	e := New(provider, DefaultConfig())

	qs := []quizgen.Question{skeleton("q1", quizgen.WordChoice, "journey")}
	out := e.Enhance(context.Background(), qs)

	if len(out) != 1 {
		t.Fatalf("expected 1 question, got %d", len(out))
	}
	q := out[0]
	if q.NeedsOptions {
		t.Error("expected NeedsOptions to be cleared")
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q.Options))
	}
	if q.CorrectOption < 0 || q.CorrectOption >= 4 {
		t.Fatalf("correct option index %d out of range", q.CorrectOption)
	}
	if q.Options[q.CorrectOption] != "journey" {
		t.Errorf("correct option is %q, want %q", q.Options[q.CorrectOption], "journey")
	}
}

func TestEnhanceFallbackOnFailure(t *testing.T) {
	provider := llm.NewFailingProvider(nil)
	e := New(provider, DefaultConfig())

	qs := []quizgen.Question{
		skeleton("q1", quizgen.GrammarChoice, "the dative case"),
		skeleton("q2", quizgen.WordChoice, "journey"),
		skeleton("q3", quizgen.TranslationChoice, "The journey begins tomorrow."),
		skeleton("q4", quizgen.WordChoice, "freedom"),
		skeleton("q5", quizgen.GrammarChoice, "a subordinate clause"),
	}
	out := e.Enhance(context.Background(), qs)

	if len(out) != len(qs) {
		t.Fatalf("expected %d questions, got %d", len(qs), len(out))
	}
	for i, q := range out {
		if q.QuestionID != qs[i].QuestionID {
			t.Fatalf("order not preserved: position %d has %s, want %s",
				i, q.QuestionID, qs[i].QuestionID)
		}
		if q.NeedsOptions {
			t.Errorf("%s: fallback should complete the question", q.QuestionID)
		}
		if len(q.Options) != 4 {
			t.Errorf("%s: expected 4 fallback options, got %d", q.QuestionID, len(q.Options))
		}
		if q.CorrectOption < 0 {
			t.Errorf("%s: correct option not resolved", q.QuestionID)
		} else if q.Options[q.CorrectOption] != qs[i].CorrectText {
			t.Errorf("%s: correct option %q, want %q",
				q.QuestionID, q.Options[q.CorrectOption], qs[i].CorrectText)
		}
	}
}

func TestEnhancePassesThroughNonSkeletons(t *testing.T) {
	provider := llm.NewFailingProvider(nil)
	e := New(provider, DefaultConfig())

	spelling := quizgen.Question{
		QuestionID: "s1",
		Type:       quizgen.WordSpelling,
		Answer:     "reise",
	}
	out := e.Enhance(context.Background(), []quizgen.Question{spelling})

	if len(out) != 1 || out[0].QuestionID != "s1" {
		t.Fatal("spelling question lost")
	}
	if out[0].Options != nil {
		t.Error("spelling question must not gain options")
	}
	if provider.CallCount() != 0 {
		t.Errorf("expected no LLM calls, got %d", provider.CallCount())
	}
}

func TestEnhanceCancelledContextReturnsSkeletons(t *testing.T) {
	provider := llm.NewMockProvider()
	e := New(provider, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	qs := []quizgen.Question{skeleton("q1", quizgen.WordChoice, "journey")}
	out := e.Enhance(ctx, qs)

	if len(out) != 1 {
		t.Fatalf("expected 1 question, got %d", len(out))
	}
	if !out[0].NeedsOptions {
		t.Error("cancelled batch must hand skeletons back unchanged")
	}
}

func TestEnhancePinsCorrectOptionText(t *testing.T) {
	// Model rephrases the correct option; the enhancer must pin it back to
	// the known answer text.
	provider := llm.NewMockProvider(
		llm.MockResponse{Content: validOptionsJSON("a rephrased answer")},
	)
	e := New(provider, DefaultConfig())

	qs := []quizgen.Question{skeleton("q1", quizgen.WordChoice, "journey")}
	out := e.Enhance(context.Background(), qs)

	if out[0].Options[out[0].CorrectOption] != "journey" {
		t.Errorf("correct option %q was not pinned to the known answer",
			out[0].Options[out[0].CorrectOption])
	}
}

func TestCheckShape(t *testing.T) {
	four := []option{{Text: "a", IsCorrect: true}, {Text: "b"}, {Text: "c"}, {Text: "d"}}
	if _, err := checkShape(four); err != nil {
		t.Errorf("unexpected error for valid shape: %v", err)
	}

	three := four[:3]
	if _, err := checkShape(three); err == nil {
		t.Error("expected error for 3 options")
	}

	twoCorrect := []option{
		{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}, {Text: "c"}, {Text: "d"},
	}
	if _, err := checkShape(twoCorrect); err == nil {
		t.Error("expected error for two correct options")
	}
}

func TestApplyFallback(t *testing.T) {
	q := skeleton("q1", quizgen.TranslationChoice, "The journey begins tomorrow.")
	done := ApplyFallback(q)

	if done.NeedsOptions {
		t.Error("expected NeedsOptions cleared")
	}
	if len(done.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(done.Options))
	}
	if done.Options[done.CorrectOption] != q.CorrectText {
		t.Errorf("correct option %q, want %q", done.Options[done.CorrectOption], q.CorrectText)
	}
}
