// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the author-scout CLI. It ranks the
// authors of recent arXiv papers by their Semantic Scholar metrics.
package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/author-scout/internal/config"
	"github.com/pdiddy/author-scout/internal/observability"
	"github.com/pdiddy/author-scout/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// app holds state shared by subcommands once configuration is loaded.
var app struct {
	cfg      *types.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
}

// v carries configuration; persistent flags are bound to it.
var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "author-scout",
	Short: "Rank the authors of recent arXiv papers by citation impact",
	Long: `author-scout fetches recent arXiv papers in chosen categories, filters them
with a boolean keyword expression over abstracts, resolves each author on
Semantic Scholar and ranks the authors by h-index and citation count.

Configuration is read from ./author-scout.yaml or
~/.config/author-scout/author-scout.yaml, overridden by AUTHOR_SCOUT_*
environment variables and flags. A Semantic Scholar API key may be placed in
.secrets/semantic-scholar-api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		secretsDir, _ := cmd.Flags().GetString("secrets-dir")

		boot := observability.NewLogger(types.LoggingConfig{Level: v.GetString("logging.level"), Format: "console"})
		cfg, err := config.Load(v, config.Options{File: cfgFile, SecretsDir: secretsDir}, boot)
		if err != nil {
			return err
		}

		app.cfg = cfg
		app.logger = observability.NewLogger(cfg.Logging)
		app.registry = prometheus.NewRegistry()
		app.metrics = observability.NewMetrics(app.registry)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./author-scout.yaml or ~/.config/author-scout/author-scout.yaml)")
	pf.String("secrets-dir", ".secrets", "directory holding API key files")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console or json)")

	_ = v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", pf.Lookup("log-format"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
