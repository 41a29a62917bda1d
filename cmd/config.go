package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lectora.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings and a fresh JWT secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			p, err := config.Path()
			if err != nil {
				return err
			}
			path = p
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		// The target may not exist yet, so only the default locations are read.
		cfg, err := config.Load(cmd.Flags(), "")
		if err != nil {
			if !force {
				return err
			}
			cfg = config.Defaults()
		}
		if cfg.JWTSecret == "" {
			if cfg.JWTSecret, err = accounts.GeneratePassword(48); err != nil {
				return err
			}
		}
		if err := config.Write(path, cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.JWTSecret != "" {
			cfg.JWTSecret = "********"
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		cfg.Database = dbPath
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "addr:         %s\n", cfg.Addr)
		fmt.Fprintf(out, "database:     %s\n", cfg.Database)
		fmt.Fprintf(out, "language:     %s\n", cfg.Language)
		fmt.Fprintf(out, "log_mode:     %s\n", cfg.LogMode)
		fmt.Fprintf(out, "token_ttl:    %s\n", cfg.TokenTTL)
		fmt.Fprintf(out, "cors_origins: %v\n", cfg.CORSOrigins)
		fmt.Fprintf(out, "jwt_secret:   %s\n", cfg.JWTSecret)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
