package questions

import "github.com/abhisek/quizline/internal/llm"

// questionItem describes one record. Strict items forbid unknown keys, which
// vendor structured-output modes require.
func questionItem(strict bool) map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text shown to the player",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Answer choices in display order",
			},
			"correctAnswer": map[string]any{
				"type":        "string",
				"description": "Exact text of the correct option",
			},
		},
		"required": []any{"question", "options", "correctAnswer"},
	}
	if strict {
		item["additionalProperties"] = false
	}
	return item
}

// QuestionSetSchema is the object-rooted shape requested from LLM providers.
var QuestionSetSchema = &llm.Schema{
	Name:        "question-set",
	Description: "A set of multiple-choice quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": questionItem(true),
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// DocumentSchema accepts a question file: either a bare array of records or
// an object with a "questions" array.
var DocumentSchema = &llm.Schema{
	Name:        "question-document",
	Description: "A quizline question file",
	Definition: map[string]any{
		"oneOf": []any{
			map[string]any{
				"type":  "array",
				"items": questionItem(false),
			},
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"questions": map[string]any{
						"type":  "array",
						"items": questionItem(false),
					},
				},
				"required": []any{"questions"},
			},
		},
	},
}
