package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var questionSchema = &Schema{
	Name:        "test-question",
	Description: "A single multiple-choice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text":         map[string]any{"type": "string"},
			"answer_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
			"skill":        map[string]any{"type": "string", "enum": []string{"comprehension", "vocabulary"}},
			"options": map[string]any{
				"type":     "array",
				"minItems": 4,
				"maxItems": 4,
				"items":    map[string]any{"type": "string"},
			},
		},
		"required": []string{"text", "answer_index"},
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"complete", `{"text":"¿Quién llegó?","answer_index":2,"skill":"vocabulary"}`, true},
		{"optional fields omitted", `{"text":"¿Dónde?","answer_index":0}`, true},
		{"four options", `{"text":"¿Qué?","answer_index":1,"options":["a","b","c","d"]}`, true},
		{"three options", `{"text":"¿Qué?","answer_index":1,"options":["a","b","c"]}`, false},
		{"missing required", `{"text":"¿Cuándo?"}`, false},
		{"wrong type", `{"text":"¿Por qué?","answer_index":"two"}`, false},
		{"index out of range", `{"text":"¿Cuál?","answer_index":4}`, false},
		{"unknown skill", `{"text":"¿Cómo?","answer_index":1,"skill":"logic-puzzles"}`, false},
		{"malformed", `{not json}`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(questionSchema, json.RawMessage(tt.raw))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.raw, string(inv.Content))
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)))
}

func TestCompiledSchemaIsReused(t *testing.T) {
	a, err := compiled(questionSchema)
	require.NoError(t, err)
	b, err := compiled(questionSchema)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestValidateReadingSchemas(t *testing.T) {
	passage := &Schema{
		Name: "test-passage",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string", "minLength": 1},
				"text":  map[string]any{"type": "string", "minLength": 1},
			},
			"required": []string{"title", "text"},
		},
	}
	assert.NoError(t, validateResponse(passage, json.RawMessage(`{"title":"El faro","text":"Había una vez."}`)))
	assert.Error(t, validateResponse(passage, json.RawMessage(`{"title":"","text":"x"}`)))
}
