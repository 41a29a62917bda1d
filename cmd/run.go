package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/app"
	"github.com/abhisek/lectora/internal/config"
	"github.com/abhisek/lectora/internal/llm"
	"github.com/abhisek/lectora/internal/progress"
	"github.com/abhisek/lectora/internal/quiz"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/store"
)

// services are the domain objects shared by the TUI and the HTTP server.
type services struct {
	accounts *accounts.Service
	progress *progress.Log
	quizzes  *quiz.Service

	// providerErr is set when no LLM provider could be built. Quizzes then
	// fail to start but everything else works.
	providerErr error
}

// buildServices wires the store into the domain services.
func buildServices(ctx context.Context, st *store.Store, cfg config.Config, logger *zap.Logger) (*services, error) {
	if cfg.Language != "es" && cfg.Language != "en" {
		return nil, fmt.Errorf("unsupported language %q (want es or en)", cfg.Language)
	}

	prog := progress.NewLog(st.Progress())

	var gen reading.Generator
	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger)
	if err != nil {
		gen = offlineGenerator{err: err}
	} else {
		logger.Info("llm provider ready", zap.String("provider", llmCfg.Provider))
		rc := reading.DefaultConfig()
		rc.Language = cfg.Language
		rc.Topics = cfg.Topics
		gen = reading.New(provider, rc)
	}

	qz := quiz.NewService(gen, st.Quizzes())
	return &services{
		accounts:    accounts.NewService(st.Users()),
		progress:    prog,
		quizzes:     qz,
		providerErr: err,
	}, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	// The TUI owns the terminal, so nothing may be logged to it.
	svc, err := buildServices(cmd.Context(), st, cfg, zap.NewNop())
	if err != nil {
		return err
	}
	if svc.providerErr != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", svc.providerErr)
		fmt.Fprintln(os.Stderr, "Practice quizzes will be unavailable.")
	}

	if ok, err := svc.accounts.HasAdmin(cmd.Context()); err == nil && !ok {
		fmt.Fprintln(os.Stderr, "No admin account yet. Create one with: lectora user add <email> --role admin")
	}

	return app.Run(app.Options{
		Accounts: svc.accounts,
		Quizzes:  svc.quizzes,
		Progress: svc.progress,
		Lang:     cfg.Language,
	})
}

// offlineGenerator stands in for the LLM generator when no provider is
// configured.
type offlineGenerator struct {
	err error
}

func (g offlineGenerator) GeneratePassage(context.Context, reading.Level) (*reading.Passage, error) {
	return nil, &llm.ErrProviderUnavailable{Err: g.err}
}

func (g offlineGenerator) GenerateQuestions(context.Context, *reading.Passage, reading.Level) ([]reading.Question, error) {
	return nil, &llm.ErrProviderUnavailable{Err: g.err}
}
