// Package config loads settings for the lectora server and CLI from an
// optional lectora.yaml, LECTORA_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings shared by `lectora serve` and the TUI.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr" yaml:"addr"`

	// Database is a SQLite path or a postgres:// DSN. Empty means
	// store.DefaultDBPath.
	Database string `mapstructure:"database" yaml:"database,omitempty"`

	// JWTSecret signs access tokens. When empty, serve generates one per
	// process.
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret,omitempty"`

	TokenTTL    time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
	CORSOrigins []string      `mapstructure:"cors_origins" yaml:"cors_origins"`

	// Language is the language of passages, questions and feedback.
	Language string `mapstructure:"language" yaml:"language"`

	// LogMode is "development" or "production".
	LogMode string `mapstructure:"log_mode" yaml:"log_mode"`

	// Topics narrows what generated passages are about. Empty lets the
	// model choose.
	Topics []string `mapstructure:"topics" yaml:"topics,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Addr:        ":8080",
		TokenTTL:    8 * time.Hour,
		CORSOrigins: []string{"http://localhost:3000"},
		Language:    "es",
		LogMode:     "development",
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"addr":     "addr",
	"db":       "database",
	"lang":     "language",
	"log-mode": "log_mode",
}

// Path returns the per-user config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "lectora", "lectora.yaml"), nil
}

// Load builds a Config. file, when non-empty, names an explicit config file
// that must exist; otherwise lectora.yaml is looked up in the user config
// directory and the working directory and may be absent. flags may be nil.
func Load(flags *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("database", d.Database)
	v.SetDefault("jwt_secret", d.JWTSecret)
	v.SetDefault("token_ttl", d.TokenTTL)
	v.SetDefault("cors_origins", d.CORSOrigins)
	v.SetDefault("language", d.Language)
	v.SetDefault("log_mode", d.LogMode)
	// topics has no default; binding makes LECTORA_TOPICS visible to Unmarshal.
	if err := v.BindEnv("topics"); err != nil {
		return Config{}, fmt.Errorf("bind env topics: %w", err)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("lectora")
		v.SetConfigType("yaml")
		if p, err := Path(); err == nil {
			v.AddConfigPath(filepath.Dir(p))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("lectora")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	c.CORSOrigins = splitList(c.CORSOrigins)
	c.Topics = splitList(c.Topics)
	return c, nil
}

// Write saves c as YAML at path, creating parent directories. The file is
// private to the user since it may hold the JWT secret.
func Write(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// splitList flattens comma-separated entries, which is how a single
// environment variable carries a list.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
