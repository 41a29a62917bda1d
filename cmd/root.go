package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lectora/internal/config"
	"github.com/abhisek/lectora/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lectora",
	Short: "AI reading comprehension tutor",
	Long:  "Lectora generates short passages with multiple-choice questions, scores the answers and keeps a progress log per student.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "SQLite path or postgres:// DSN (overrides LECTORA_DB)")
	pf.String("config", "", "Path to lectora.yaml")
	pf.String("lang", "", "Content language: es or en")
	pf.String("log-mode", "", "Log format: development or production")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig merges the config file, environment and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.Load(cmd.Flags(), file)
}

// resolveDBPath returns the database location using --db or the config
// file first, then LECTORA_DB, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.Database != "" {
		return cfg.Database, store.EnsureDir(cfg.Database)
	}
	return store.DefaultDBPath()
}

// openStore loads configuration and opens the database it names.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("open store: %w", err)
	}
	return st, cfg, nil
}
