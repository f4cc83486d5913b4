// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory holding one plain-text
// file per secret. The file name is the key and the trimmed contents are the
// value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultDir is the secrets directory used when none is configured.
const DefaultDir = ".secrets"

// SemanticScholarAPIKey names the file holding the Semantic Scholar API key.
const SemanticScholarAPIKey = "semantic-scholar-api-key"

// Store holds loaded secrets.
type Store map[string]string

// Get returns the secret stored under key.
func (s Store) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Keys returns the loaded key names in sorted order. Values are never
// exposed this way so the result is safe to log.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty Store. Unreadable files are logged and skipped.
func Load(dir string, logger zerolog.Logger) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}

	if len(store) > 0 {
		logger.Debug().Strs("keys", store.Keys()).Str("dir", dir).Msg("loaded secrets")
	}
	return store, nil
}
