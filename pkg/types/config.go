package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single request, including reading the body.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "author-scout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ArxivConfig holds settings for the paper fetcher.
type ArxivConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the arXiv query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// MaxResults is the default result cap when a run does not set one (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// AuthorLimit is the default per-paper author limit (default 5).
	AuthorLimit int `json:"author_limit" yaml:"author_limit" mapstructure:"author_limit"`
}

// ScholarConfig holds settings for the Semantic Scholar author resolver.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the Semantic Scholar Graph API root.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey is an optional API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// CandidateLimit is how many same-name candidates to request (at most 5).
	CandidateLimit int `json:"candidate_limit" yaml:"candidate_limit" mapstructure:"candidate_limit"`

	// RequestInterval is the minimum delay between two author searches issued
	// by one run (default 1s).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval" mapstructure:"request_interval"`

	// MaxRetries is the number of retries on HTTP 429 (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// FieldOfStudy is the field used to disambiguate same-name candidates
	// (default "Computer Science").
	FieldOfStudy string `json:"field_of_study" yaml:"field_of_study" mapstructure:"field_of_study"`
}

// RankConfig holds settings for the ranking pipeline.
type RankConfig struct {
	// MinHIndex and MaxHIndex are the default h-index bounds (defaults 1 and 25).
	MinHIndex int `json:"min_h_index" yaml:"min_h_index" mapstructure:"min_h_index"`
	MaxHIndex int `json:"max_h_index" yaml:"max_h_index" mapstructure:"max_h_index"`

	// Concurrency bounds the number of author resolutions in flight (default 2).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum level (trace, debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output is stdout or stderr.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	Address         string        `json:"address" yaml:"address" mapstructure:"address"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// Config groups all stage configurations.
type Config struct {
	Arxiv   ArxivConfig   `json:"arxiv" yaml:"arxiv" mapstructure:"arxiv"`
	Scholar ScholarConfig `json:"scholar" yaml:"scholar" mapstructure:"scholar"`
	Rank    RankConfig    `json:"rank" yaml:"rank" mapstructure:"rank"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
