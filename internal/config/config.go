// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads author-scout configuration from defaults, an optional
// YAML file, AUTHOR_SCOUT_* environment variables and the secrets directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/author-scout/internal/arxiv"
	"github.com/pdiddy/author-scout/internal/scholar"
	"github.com/pdiddy/author-scout/internal/secrets"
	"github.com/pdiddy/author-scout/pkg/types"
)

// EnvPrefix prefixes environment overrides, e.g. AUTHOR_SCOUT_RANK_CONCURRENCY.
const EnvPrefix = "AUTHOR_SCOUT"

// Options selects where configuration is read from.
type Options struct {
	// File is an explicit config file. When empty, author-scout.yaml is
	// looked up in the working directory and ~/.config/author-scout/.
	File string

	// SecretsDir holds the fallback API key file (default .secrets).
	SecretsDir string
}

// Load builds the configuration on v, which may already carry bound flags.
// A missing default config file is not an error; a missing explicit one is.
func Load(v *viper.Viper, opts Options, logger zerolog.Logger) (*types.Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("author-scout")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "author-scout"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Scholar.APIKey == "" {
		dir := opts.SecretsDir
		if dir == "" {
			dir = secrets.DefaultDir
		}
		store, err := secrets.Load(dir, logger)
		if err != nil {
			return nil, err
		}
		if key, ok := store.Get(secrets.SemanticScholarAPIKey); ok {
			cfg.Scholar.APIKey = key
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	userAgent := "author-scout/0.1"

	v.SetDefault("arxiv.base_url", arxiv.DefaultBaseURL)
	v.SetDefault("arxiv.timeout", 60*time.Second)
	v.SetDefault("arxiv.user_agent", userAgent)
	v.SetDefault("arxiv.max_results", 10)
	v.SetDefault("arxiv.author_limit", 5)

	v.SetDefault("scholar.base_url", scholar.DefaultBaseURL)
	v.SetDefault("scholar.timeout", 15*time.Second)
	v.SetDefault("scholar.user_agent", userAgent)
	v.SetDefault("scholar.api_key", "")
	v.SetDefault("scholar.candidate_limit", scholar.MaxCandidates)
	v.SetDefault("scholar.request_interval", time.Second)
	v.SetDefault("scholar.max_retries", 2)
	v.SetDefault("scholar.field_of_study", scholar.DefaultFieldOfStudy)

	v.SetDefault("rank.min_h_index", 1)
	v.SetDefault("rank.max_h_index", 25)
	v.SetDefault("rank.concurrency", 2)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// Validate checks values that would otherwise fail deep inside a run.
func Validate(cfg *types.Config) error {
	if cfg.Arxiv.BaseURL == "" {
		return fmt.Errorf("arxiv.base_url is required")
	}
	if cfg.Scholar.BaseURL == "" {
		return fmt.Errorf("scholar.base_url is required")
	}
	if cfg.Scholar.CandidateLimit < 1 || cfg.Scholar.CandidateLimit > scholar.MaxCandidates {
		return fmt.Errorf("scholar.candidate_limit must be between 1 and %d, got %d",
			scholar.MaxCandidates, cfg.Scholar.CandidateLimit)
	}
	if cfg.Scholar.RequestInterval < 0 {
		return fmt.Errorf("scholar.request_interval must not be negative")
	}
	if cfg.Rank.Concurrency < 1 {
		return fmt.Errorf("rank.concurrency must be at least 1, got %d", cfg.Rank.Concurrency)
	}
	if cfg.Rank.MinHIndex < 0 || cfg.Rank.MinHIndex > cfg.Rank.MaxHIndex {
		return fmt.Errorf("rank h-index bounds [%d, %d] are invalid", cfg.Rank.MinHIndex, cfg.Rank.MaxHIndex)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "console", "pretty":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}
	return nil
}
