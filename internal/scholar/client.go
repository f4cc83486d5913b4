// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar resolves author display names to Semantic Scholar author
// profiles through the author-search endpoint.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/author-scout/internal/httputil"
	"github.com/pdiddy/author-scout/pkg/types"
)

// DefaultBaseURL is the Semantic Scholar Graph API root.
const DefaultBaseURL = "https://api.semanticscholar.org/graph/v1"

// AuthorFields lists the fields requested for each candidate. Fields of
// study of the candidate's papers drive disambiguation.
const AuthorFields = "name,paperCount,citationCount,hIndex,affiliations,url,papers.fieldsOfStudy"

// MaxCandidates caps the candidate list requested per name.
const MaxCandidates = 5

const (
	source          = "semantic_scholar"
	maxResponseSize = 10 << 20
)

// Candidate is one author returned by a name search.
type Candidate struct {
	AuthorID      string           `json:"authorId"`
	Name          string           `json:"name"`
	URL           string           `json:"url"`
	Affiliations  []string         `json:"affiliations"`
	PaperCount    int              `json:"paperCount"`
	CitationCount int              `json:"citationCount"`
	HIndex        int              `json:"hIndex"`
	Papers        []CandidatePaper `json:"papers"`
}

// CandidatePaper carries the fields of study of one of a candidate's papers.
type CandidatePaper struct {
	FieldsOfStudy []string `json:"fieldsOfStudy"`
}

// Profile converts the candidate to the shared profile type.
func (c Candidate) Profile() types.AuthorProfile {
	return types.AuthorProfile{
		AuthorID:      c.AuthorID,
		Name:          c.Name,
		PaperCount:    c.PaperCount,
		CitationCount: c.CitationCount,
		HIndex:        c.HIndex,
		Affiliations:  c.Affiliations,
		URL:           c.URL,
	}
}

type searchResponse struct {
	Total int         `json:"total"`
	Data  []Candidate `json:"data"`
}

// Client calls the Semantic Scholar author-search endpoint.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	APIKey     string
	UserAgent  string
	Limit      int
	MaxRetries int
}

// NewClient builds a Client from configuration.
func NewClient(httpClient *http.Client, cfg types.ScholarConfig) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	limit := cfg.CandidateLimit
	if limit <= 0 || limit > MaxCandidates {
		limit = MaxCandidates
	}
	return &Client{
		HTTP:       httpClient,
		BaseURL:    base,
		APIKey:     cfg.APIKey,
		UserAgent:  cfg.UserAgent,
		Limit:      limit,
		MaxRetries: cfg.MaxRetries,
	}
}

// SearchAuthors returns the candidates Semantic Scholar lists for name, in
// API order. HTTP 429 responses are retried with backoff.
func (c *Client) SearchAuthors(ctx context.Context, name string) ([]Candidate, error) {
	params := url.Values{
		"query":  {name},
		"limit":  {strconv.Itoa(c.Limit)},
		"fields": {AuthorFields},
	}
	reqURL := c.BaseURL + "/author/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return nil, &types.FetchError{Source: source, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil, &types.FetchError{Source: source, URL: reqURL, StatusCode: resp.StatusCode}
	}

	var sr searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&sr); err != nil {
		return nil, &types.ParseError{Stage: source, Input: name, Offset: -1, Reason: "decoding author search response", Err: err}
	}
	return sr.Data, nil
}
