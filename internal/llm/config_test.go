package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LECTORA_LLM_PROVIDER", "LECTORA_OPENROUTER_API_KEY", "LECTORA_OPENROUTER_MODEL",
		"LECTORA_OPENAI_API_KEY", "LECTORA_ANTHROPIC_API_KEY", "LECTORA_GEMINI_API_KEY",
		"LECTORA_LLM_TIMEOUT", "LECTORA_LLM_MAX_ATTEMPTS", "LECTORA_OPENROUTER_STRICT_SCHEMA",
		"OPENROUTER_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, "microsoft/phi-4-reasoning-plus:free", cfg.OpenRouter.Model)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LECTORA_OPENROUTER_API_KEY", "sk-or-1")
	t.Setenv("LECTORA_OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct")
	t.Setenv("LECTORA_OPENROUTER_STRICT_SCHEMA", "true")
	t.Setenv("LECTORA_LLM_TIMEOUT", "15s")
	t.Setenv("LECTORA_LLM_MAX_ATTEMPTS", "5")

	cfg := ConfigFromEnv()
	assert.Equal(t, "sk-or-1", cfg.OpenRouter.APIKey)
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct", cfg.OpenRouter.Model)
	assert.True(t, cfg.OpenRouter.StrictSchema)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_IgnoresBadDurations(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LECTORA_LLM_TIMEOUT", "soon")
	assert.Equal(t, 60*time.Second, ConfigFromEnv().Timeout)
}

func TestDiscoverConfig(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		want   string
		wantOK bool
	}{
		{"none", nil, "", false},
		{"openrouter first", map[string]string{"OPENROUTER_API_KEY": "a", "OPENAI_API_KEY": "b"}, ProviderOpenRouter, true},
		{"openai before anthropic", map[string]string{"OPENAI_API_KEY": "b", "ANTHROPIC_API_KEY": "c"}, ProviderOpenAI, true},
		{"gemini last", map[string]string{"GEMINI_API_KEY": "d"}, ProviderGemini, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLLMEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, ok := DiscoverConfig()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, cfg.Provider)
			if ok {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("explicit config wins", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("LECTORA_OPENROUTER_API_KEY", "sk-or-1")
		t.Setenv("OPENAI_API_KEY", "sk-2")
		cfg, err := ResolveConfig()
		require.NoError(t, err)
		assert.Equal(t, ProviderOpenRouter, cfg.Provider)
		assert.Equal(t, "sk-or-1", cfg.OpenRouter.APIKey)
	})

	t.Run("falls back to discovery", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
		t.Setenv("LECTORA_LLM_TIMEOUT", "5s")
		cfg, err := ResolveConfig()
		require.NoError(t, err)
		assert.Equal(t, ProviderAnthropic, cfg.Provider)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("nothing configured", func(t *testing.T) {
		clearLLMEnv(t)
		_, err := ResolveConfig()
		assert.ErrorContains(t, err, "LECTORA_OPENROUTER_API_KEY")
	})
}
