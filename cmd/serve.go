package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/httpapi"
	"github.com/abhisek/lectora/internal/logging"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		logger, err := logging.New(cfg.LogMode)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		svc, err := buildServices(cmd.Context(), st, cfg, logger)
		if err != nil {
			return err
		}
		if svc.providerErr != nil {
			logger.Warn("llm provider not configured, quizzes unavailable", zap.Error(svc.providerErr))
		}

		secret := cfg.JWTSecret
		if secret == "" {
			// Tokens stop verifying after a restart.
			if secret, err = accounts.GeneratePassword(48); err != nil {
				return fmt.Errorf("generate jwt secret: %w", err)
			}
			logger.Warn("jwt_secret not set, using a per-process secret")
		}

		api := httpapi.New(svc.accounts, svc.quizzes, svc.progress,
			httpapi.NewTokenIssuer(secret, cfg.TokenTTL), logger,
			httpapi.Options{CORSOrigins: cfg.CORSOrigins, Language: cfg.Language})

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           api.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("dialect", st.Dialect()))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
}
