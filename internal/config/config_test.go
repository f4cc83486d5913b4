// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/author-scout/internal/arxiv"
	"github.com/pdiddy/author-scout/internal/secrets"
	"github.com/pdiddy/author-scout/pkg/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "author-scout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func emptySecrets(t *testing.T) string {
	return filepath.Join(t.TempDir(), "no-secrets")
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), Options{SecretsDir: emptySecrets(t)}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, arxiv.DefaultBaseURL, cfg.Arxiv.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Arxiv.Timeout)
	assert.Equal(t, 10, cfg.Arxiv.MaxResults)
	assert.Equal(t, 5, cfg.Arxiv.AuthorLimit)
	assert.Equal(t, 5, cfg.Scholar.CandidateLimit)
	assert.Equal(t, time.Second, cfg.Scholar.RequestInterval)
	assert.Equal(t, "Computer Science", cfg.Scholar.FieldOfStudy)
	assert.Empty(t, cfg.Scholar.APIKey)
	assert.Equal(t, 1, cfg.Rank.MinHIndex)
	assert.Equal(t, 25, cfg.Rank.MaxHIndex)
	assert.Equal(t, 2, cfg.Rank.Concurrency)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
arxiv:
  max_results: 50
  timeout: 30s
scholar:
  request_interval: 3s
  api_key: from-file
rank:
  max_h_index: 40
  concurrency: 4
logging:
  level: debug
  format: json
`)
	cfg, err := Load(viper.New(), Options{File: path, SecretsDir: emptySecrets(t)}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Arxiv.MaxResults)
	assert.Equal(t, 30*time.Second, cfg.Arxiv.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Scholar.RequestInterval)
	assert.Equal(t, "from-file", cfg.Scholar.APIKey)
	assert.Equal(t, 40, cfg.Rank.MaxHIndex)
	assert.Equal(t, 4, cfg.Rank.Concurrency)
	assert.Equal(t, types.LoggingConfig{Level: "debug", Format: "json", Output: "stderr"}, cfg.Logging)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "rank:\n  concurrency: 4\n")
	t.Setenv("AUTHOR_SCOUT_RANK_CONCURRENCY", "8")

	cfg, err := Load(viper.New(), Options{File: path, SecretsDir: emptySecrets(t)}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Rank.Concurrency)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), Options{File: filepath.Join(t.TempDir(), "missing.yaml")}, zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadAPIKeyFromSecrets(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, secrets.SemanticScholarAPIKey), []byte("sk_secret\n"), 0o600))

	cfg, err := Load(viper.New(), Options{SecretsDir: dir}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "sk_secret", cfg.Scholar.APIKey)
}

func TestLoadConfiguredKeyWinsOverSecrets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, secrets.SemanticScholarAPIKey), []byte("sk_secret"), 0o600))
	path := writeConfig(t, "scholar:\n  api_key: sk_config\n")

	cfg, err := Load(viper.New(), Options{File: path, SecretsDir: dir}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "sk_config", cfg.Scholar.APIKey)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"candidate limit too high", "scholar:\n  candidate_limit: 9\n"},
		{"zero concurrency", "rank:\n  concurrency: 0\n"},
		{"inverted h bounds", "rank:\n  min_h_index: 30\n  max_h_index: 10\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"negative interval", "scholar:\n  request_interval: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := Load(viper.New(), Options{File: path, SecretsDir: emptySecrets(t)}, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}
