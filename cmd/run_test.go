package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/lectora/internal/config"
	"github.com/abhisek/lectora/internal/llm"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/store"
)

func TestBuildServices_NoProvider(t *testing.T) {
	t.Setenv("LECTORA_LLM_PROVIDER", "openai")
	t.Setenv("LECTORA_OPENAI_API_KEY", "")

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Defaults()
	cfg.Topics = []string{"space"}

	svc, err := buildServices(context.Background(), st, cfg, zap.New(core))
	if err != nil {
		t.Fatalf("buildServices: %v", err)
	}
	if svc.providerErr == nil {
		t.Fatal("expected providerErr to be set")
	}
	// Reporting is left to the caller.
	if n := logs.Len(); n != 0 {
		t.Errorf("buildServices logged %d entries, want 0", n)
	}

	_, err = svc.quizzes.Start(context.Background(), "ana@example.com", reading.LevelBasic)
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Errorf("Start error = %v, want ErrProviderUnavailable", err)
	}
}

func TestBuildServices_RejectsLanguage(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	cfg := config.Defaults()
	cfg.Language = "fr"
	if _, err := buildServices(context.Background(), st, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for an unsupported language")
	}
}
