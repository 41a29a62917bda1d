package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// DefaultOpenRouterModel is the free reasoning model the reading content is
// generated with unless overridden.
const DefaultOpenRouterModel = "microsoft/phi-4-reasoning-plus:free"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend serves requests. One of the
	// Provider* constants.
	Provider string

	OpenRouter OpenRouterConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Default: "https://openrouter.ai/api/v1"

	// AppTitle is sent as X-Title so requests are attributed on the
	// OpenRouter dashboard.
	AppTitle string

	// StrictSchema requests json_schema response format. Many free models
	// reject it, so by default the schema is put in the system prompt and
	// json_object mode is requested instead.
	StrictSchema bool
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional, for OpenAI-compatible gateways.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config targeting OpenRouter.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderOpenRouter,
		OpenRouter: OpenRouterConfig{
			Model:    DefaultOpenRouterModel,
			AppTitle: "Lectora",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from LECTORA_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.Provider, "LECTORA_LLM_PROVIDER")

	setString(&cfg.OpenRouter.APIKey, "LECTORA_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "LECTORA_OPENROUTER_MODEL")
	setString(&cfg.OpenRouter.BaseURL, "LECTORA_OPENROUTER_BASE_URL")
	if v, err := strconv.ParseBool(os.Getenv("LECTORA_OPENROUTER_STRICT_SCHEMA")); err == nil {
		cfg.OpenRouter.StrictSchema = v
	}

	setString(&cfg.OpenAI.APIKey, "LECTORA_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "LECTORA_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "LECTORA_OPENAI_BASE_URL")

	setString(&cfg.Anthropic.APIKey, "LECTORA_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "LECTORA_ANTHROPIC_MODEL")

	setString(&cfg.Gemini.APIKey, "LECTORA_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "LECTORA_GEMINI_MODEL")

	if d, err := time.ParseDuration(os.Getenv("LECTORA_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("LECTORA_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' standard API key variables
// (OpenRouter → OpenAI → Anthropic → Gemini) and returns a Config for the
// first one found. Returns (Config{}, false) if none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig returns the LECTORA_* configuration when it validates and
// otherwise falls back to DiscoverConfig.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv("LECTORA_LLM_PROVIDER") != "" {
		return Config{}, err
	}
	if found, ok := DiscoverConfig(); ok {
		found.Timeout = cfg.Timeout
		found.Retry = cfg.Retry
		return found, nil
	}
	return Config{}, err
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LECTORA_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LECTORA_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LECTORA_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("LECTORA_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
