// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv fetches recent papers for a set of categories and a
// submission-date window from the arXiv Atom API.
package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/author-scout/pkg/types"
)

// DefaultBaseURL is the arXiv query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

const (
	source          = "arxiv"
	defaultTimeout  = 60 * time.Second
	maxResponseSize = 20 << 20
)

// FetchParams selects the papers to fetch.
type FetchParams struct {
	Categories []string
	From, To   time.Time

	// MaxResults caps the number of entries requested.
	MaxResults int

	// AuthorLimit keeps only the first N listed authors; 0 keeps all.
	AuthorLimit int
}

// Fetcher queries the arXiv API. The zero value is not usable; build one
// with NewFetcher.
type Fetcher struct {
	client  *http.Client
	cfg     types.ArxivConfig
	baseURL string
	logger  zerolog.Logger
}

// NewFetcher returns a Fetcher. A nil client gets one with no timeout of its
// own; the per-call timeout comes from cfg.Timeout.
func NewFetcher(client *http.Client, cfg types.ArxivConfig, logger zerolog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Fetcher{
		client:  client,
		cfg:     cfg,
		baseURL: base,
		logger:  logger.With().Str("component", "arxiv").Logger(),
	}
}

// Fetch issues one windowed query and returns the entries in the order arXiv
// sent them (submission date, newest first). Transport failures, timeouts
// and non-200 responses return a *types.FetchError; an undecodable body
// returns a *types.ParseError. Fetch does not retry.
func (f *Fetcher) Fetch(ctx context.Context, p FetchParams) ([]types.Paper, error) {
	reqURL := f.baseURL + "?" + BuildParams(p).Encode()

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &types.FetchError{Source: source, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil, &types.FetchError{Source: source, URL: reqURL, StatusCode: resp.StatusCode}
	}

	var feed atomFeed
	if err := xml.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&feed); err != nil {
		// A deadline hit mid-body is a fetch failure, not a malformed feed.
		if ctxErr := ctx.Err(); ctxErr != nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, &types.FetchError{Source: source, URL: reqURL, Err: err}
		}
		return nil, &types.ParseError{Stage: source, Offset: -1, Reason: "decoding Atom feed", Err: err}
	}

	papers := make([]types.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		// arXiv reports query errors as a single entry titled "Error".
		if strings.EqualFold(strings.TrimSpace(entry.Title), "error") && extractArxivID(entry.ID) == "" {
			return nil, &types.FetchError{
				Source: source,
				URL:    reqURL,
				Err:    errors.New(collapse(entry.Summary)),
			}
		}
		papers = append(papers, entryToPaper(entry, p.AuthorLimit))
	}

	f.logger.Debug().
		Int("papers", len(papers)).
		Int("total_results", feed.TotalResults).
		Dur("elapsed", time.Since(start)).
		Msg("fetched arXiv feed")
	return papers, nil
}

// BuildParams returns the query-string parameters for p.
func BuildParams(p FetchParams) url.Values {
	return url.Values{
		"search_query": {BuildSearchQuery(p.Categories, p.From, p.To)},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(p.MaxResults)},
		"sortBy":       {"submittedDate"},
		"sortOrder":    {"descending"},
	}
}

// BuildSearchQuery returns the search_query expression: the disjunction of
// the categories ANDed with an inclusive submission-date window, e.g.
//
//	(cat:cs.LG OR cat:cs.AI) AND submittedDate:[202401010000 TO 202401312359]
func BuildSearchQuery(categories []string, from, to time.Time) string {
	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, "cat:"+c)
	}
	catExpr := strings.Join(cats, " OR ")
	if len(cats) > 1 {
		catExpr = "(" + catExpr + ")"
	}
	return fmt.Sprintf("%s AND submittedDate:[%s0000 TO %s2359]",
		catExpr, from.Format("20060102"), to.Format("20060102"))
}

func entryToPaper(e atomEntry, authorLimit int) types.Paper {
	p := types.Paper{
		ID:       strings.TrimSpace(e.ID),
		ArxivID:  extractArxivID(e.ID),
		Title:    collapse(e.Title),
		Abstract: collapse(e.Summary),
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(e.Published)); err == nil {
		p.Published = t
	}
	for _, c := range e.Categories {
		if c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}
	for _, a := range e.Authors {
		if authorLimit > 0 && len(p.Authors) == authorLimit {
			break
		}
		if name := collapse(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}
	return p
}

// collapse trims s and replaces internal whitespace runs (arXiv wraps
// titles and abstracts) with single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	XMLName      xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	TotalResults int         `xml:"totalResults"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := strings.TrimSpace(idURL[idx+len(prefix):])

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
