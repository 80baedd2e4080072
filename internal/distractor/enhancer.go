package distractor

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/lingiz/internal/llm"
	"github.com/abhisek/lingiz/internal/quizgen"
)

var (
	errWrongOptionCount  = errors.New("expected exactly 4 options")
	errWrongCorrectCount = errors.New("expected exactly one correct option")
)

// Config tunes the enhancement pool.
type Config struct {
	// MaxConcurrency bounds the number of in-flight LLM calls. Default: 8.
	MaxConcurrency int

	// UnitTimeout is the per-question time limit. A unit that exceeds it falls
	// back to the deterministic option set. Default: 30s.
	UnitTimeout time.Duration

	// MaxTokens and Temperature are passed through to the model.
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the default enhancement configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 8,
		UnitTimeout:    30 * time.Second,
		MaxTokens:      1024,
		Temperature:    0.7,
	}
}

// Enhancer fills skeleton choice questions with distractor options.
type Enhancer struct {
	provider llm.Provider
	cfg      Config
}

// New creates an Enhancer using the given provider.
func New(provider llm.Provider, cfg Config) *Enhancer {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 8
	}
	if cfg.UnitTimeout <= 0 {
		cfg.UnitTimeout = 30 * time.Second
	}
	return &Enhancer{provider: provider, cfg: cfg}
}

type unitResult struct {
	questionID string
	question   quizgen.Question
}

// Enhance completes every question with NeedsOptions set; others pass
// through untouched. Each needing question is one independent unit of work
// on a bounded worker pool. A unit failure degrades only that question to
// its fallback options. Output order matches input order regardless of
// completion order.
//
// Cancellation is cooperative: once ctx is cancelled no further units are
// dispatched, in-flight units finish or time out, and the returned slice
// mixes enhanced questions with untouched skeletons. Callers must treat a
// cancelled batch as usable but partial.
func (e *Enhancer) Enhance(ctx context.Context, questions []quizgen.Question) []quizgen.Question {
	pending := make([]quizgen.Question, 0, len(questions))
	for _, q := range questions {
		if q.NeedsOptions {
			pending = append(pending, q)
		}
	}
	if len(pending) == 0 {
		return slices.Clone(questions)
	}

	workers := min(e.cfg.MaxConcurrency, len(pending))
	tasks := make(chan quizgen.Question)
	results := make(chan unitResult, len(pending))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range tasks {
				results <- unitResult{q.QuestionID, e.enhanceOne(ctx, q)}
			}
		}()
	}

	// Dispatch with a cancellation check before each unit.
	for _, q := range pending {
		select {
		case <-ctx.Done():
		case tasks <- q:
			continue
		}
		break
	}
	close(tasks)

	wg.Wait()
	close(results)

	enhanced := make(map[string]quizgen.Question, len(pending))
	for r := range results {
		enhanced[r.questionID] = r.question
	}

	// Merge by question ID, preserving the caller's order.
	out := make([]quizgen.Question, len(questions))
	for i, q := range questions {
		if done, ok := enhanced[q.QuestionID]; ok {
			out[i] = done
		} else {
			out[i] = q
		}
	}
	return out
}

// enhanceOne runs a single unit: ask the model for options, fall back on
// any failure, then shuffle and resolve the correct index.
func (e *Enhancer) enhanceOne(ctx context.Context, q quizgen.Question) quizgen.Question {
	fl, ok := flowFor(q.Type)
	if !ok {
		return q
	}

	opts, err := e.requestOptions(ctx, fl, q)
	if err != nil {
		// Batch cancellation is not a unit failure: hand the skeleton back
		// so the caller sees it as not-yet-enhanced.
		if ctx.Err() != nil {
			return q
		}
		opts = fl.fallback(q)
	}

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

// requestOptions asks the model for the option set and checks its shape.
func (e *Enhancer) requestOptions(ctx context.Context, fl flow, q quizgen.Question) ([]option, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.UnitTimeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, "distractors")

	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: fl.buildPrompt(q)}},
		Schema:      optionsSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var out optionsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, err
	}

	opts, err := checkShape(out.Options)
	if err != nil {
		return nil, err
	}

	// Pin the correct option to the known answer text; models occasionally
	// rephrase despite instructions.
	for i := range opts {
		if opts[i].IsCorrect {
			opts[i].Text = q.CorrectText
		}
	}
	return opts, nil
}

// checkShape enforces exactly 4 options with exactly one correct flag.
func checkShape(opts []option) ([]option, error) {
	if len(opts) != 4 {
		return nil, &llm.ErrInvalidResponse{Err: errWrongOptionCount}
	}
	correct := 0
	for _, o := range opts {
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return nil, &llm.ErrInvalidResponse{Err: errWrongCorrectCount}
	}
	return opts, nil
}
