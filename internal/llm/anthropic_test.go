package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anthropicStub serves a single canned Messages API reply.
func anthropicStub(t *testing.T, status int, body map[string]any) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5"}
}

func anthropicMessage(text, stop string, in, out int) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": in, "output_tokens": out},
	}
}

func anthropicError(kind, msg string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": msg}}
}

func TestAnthropicGeneratePassage(t *testing.T) {
	const passage = `{"title":"El faro","text":"Había una vez..."}`
	p := anthropicStub(t, http.StatusOK, anthropicMessage(passage, "end_turn", 50, 30))

	resp, err := p.Generate(context.Background(), UserPrompt("Eres un autor.", "Escribe un texto.", passageSchema(), 256))
	require.NoError(t, err)
	assert.JSONEq(t, passage, string(resp.Content))
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
}

func TestAnthropicErrors(t *testing.T) {
	req := Request{Messages: []Message{{Role: RoleUser, Content: "test"}}, MaxTokens: 100}
	tests := []struct {
		name   string
		status int
		body   map[string]any
		req    Request
		check  func(t *testing.T, err error)
	}{
		{
			name:   "truncated",
			status: http.StatusOK,
			body:   anthropicMessage(`{"title":"El`, "max_tokens", 50, 8),
			req:    UserPrompt("", "go", passageSchema(), 8),
			check: func(t *testing.T, err error) {
				var e *ErrMaxTokensExceeded
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   anthropicError("rate_limit_error", "Rate limit exceeded"),
			req:    req,
			check: func(t *testing.T, err error) {
				var e *ErrRateLimit
				assert.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   anthropicError("api_error", "Internal server error"),
			req:    req,
			check: func(t *testing.T, err error) {
				var e *ErrProviderUnavailable
				assert.ErrorAs(t, err, &e)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := anthropicStub(t, tt.status, tt.body).Generate(context.Background(), tt.req)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnthropicModels(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5", (&AnthropicProvider{model: "claude-haiku-4-5"}).ModelID())
	assert.Equal(t, "claude-sonnet-4-5", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet-4-20250514", anthropicModels))
}
