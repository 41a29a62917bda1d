package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFence  = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// extractJSON pulls the JSON document out of a model reply. Reasoning
// models prefix their answer with a <think> block and many models wrap
// JSON in a markdown fence even when asked not to.
func extractJSON(text string) (json.RawMessage, error) {
	s := thinkBlock.ReplaceAllString(text, "")
	s = strings.TrimSpace(s)

	if m := codeFence.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	if s == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty content")}
	}

	// Fall back to the outermost object when prose surrounds it.
	if !json.Valid([]byte(s)) {
		start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
		if start >= 0 && end > start {
			s = s[start : end+1]
		}
	}

	return json.RawMessage(s), nil
}

// decodeReply turns a backend's reply text into Response.Content. With a
// schema the JSON is extracted and validated; without one the text itself
// is returned as a JSON string. truncated replies fail regardless.
func decodeReply(schema *Schema, text string, truncated bool) (json.RawMessage, error) {
	if truncated {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(text)}
	}
	if schema == nil {
		if strings.TrimSpace(text) == "" {
			return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty content")}
		}
		return json.Marshal(text)
	}
	content, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

func usage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// schemaInstruction renders the schema as a prompt suffix for backends that
// only support free-form JSON mode.
func schemaInstruction(schema *Schema) (string, error) {
	def, err := json.MarshalIndent(schema.Definition, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return fmt.Sprintf(
		"\n\nRespond with a single JSON object and nothing else. It must conform to this JSON Schema (%s):\n%s",
		schema.Name, def,
	), nil
}
