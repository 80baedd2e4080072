package distractor

import "github.com/abhisek/lingiz/internal/llm"

// optionsSchema defines the JSON schema for distractor generation responses.
var optionsSchema = &llm.Schema{
	Name:        "distractor-options",
	Description: "Four multiple-choice options, exactly one marked correct",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"options": map[string]any{
				"type":        "array",
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly 4 options: 3 plausible but incorrect, 1 correct",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The option text shown to the learner",
						},
						"is_correct": map[string]any{
							"type":        "boolean",
							"description": "True for exactly one option",
						},
					},
					"required":             []any{"text", "is_correct"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"options"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You create multiple-choice options for a language-learning quiz built from sentences the learner captured while playing games.

Rules:
- Produce exactly 4 options: 3 incorrect distractors and 1 correct option.
- The correct option's text is given in the request. Copy it exactly, do not rephrase it.
- Distractors must be plausible to a learner who half-remembers the material. Avoid obviously silly options.
- Mark exactly one option with "is_correct": true.
- Keep every option concise.`
