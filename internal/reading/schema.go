package reading

import "github.com/abhisek/lectora/internal/llm"

// PassageSchema is the structured output for passage generation.
var PassageSchema = &llm.Schema{
	Name:        "reading-passage",
	Description: "A reading comprehension passage with a title",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short title for the passage",
			},
			"text": map[string]any{
				"type":        "string",
				"description": "The passage, in paragraphs separated by blank lines",
			},
		},
		"required":             []any{"title", "text"},
		"additionalProperties": false,
	},
}

// QuizSchema is the structured output for question generation. The count
// of questions is checked by StructuralValidator, not here, so one schema
// serves any Config.QuestionCount.
var QuizSchema = &llm.Schema{
	Name:        "reading-quiz",
	Description: "Multiple-choice questions about a reading passage",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question",
						},
						"options": map[string]any{
							"type":        "array",
							"minItems":    OptionCount,
							"maxItems":    OptionCount,
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options, without letter prefixes",
						},
						"answer_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     OptionCount - 1,
							"description": "0-based index of the correct option",
						},
						"skill": map[string]any{
							"type":        "string",
							"enum":        []any{"comprehension", "vocabulary", "critical-thinking", "logic"},
							"description": "The reading skill the question exercises",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences on why the correct option is right",
						},
					},
					"required":             []any{"text", "options", "answer_index", "skill", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
