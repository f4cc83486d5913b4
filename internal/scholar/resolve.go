// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/author-scout/internal/httputil"
	"github.com/pdiddy/author-scout/internal/observability"
	"github.com/pdiddy/author-scout/pkg/types"
)

// DefaultFieldOfStudy is the field that marks the preferred candidate among
// same-name authors.
const DefaultFieldOfStudy = "Computer Science"

const defaultResolveTimeout = 15 * time.Second

// Searcher lists author candidates for a name. *Client implements it.
type Searcher interface {
	SearchAuthors(ctx context.Context, name string) ([]Candidate, error)
}

// Resolver maps raw author names to at most one profile each. Every search
// waits on the shared Throttle first, so all goroutines using one Resolver
// respect a single request rate.
type Resolver struct {
	searcher Searcher
	throttle *httputil.Throttle
	field    string
	timeout  time.Duration
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFieldOfStudy sets the disambiguation field.
func WithFieldOfStudy(field string) ResolverOption {
	return func(r *Resolver) {
		if field != "" {
			r.field = field
		}
	}
}

// WithTimeout bounds each search request. The throttle wait is not counted.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger used to report unresolved names.
func WithLogger(l zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l.With().Str("component", "scholar").Logger()
	}
}

// WithMetrics records resolution outcomes.
func WithMetrics(m *observability.Metrics) ResolverOption {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// NewResolver returns a Resolver that searches with s and paces requests
// with throttle. A nil throttle disables pacing.
func NewResolver(s Searcher, throttle *httputil.Throttle, opts ...ResolverOption) *Resolver {
	if throttle == nil {
		throttle = httputil.NewThrottle(0)
	}
	r := &Resolver{
		searcher: s,
		throttle: throttle,
		field:    DefaultFieldOfStudy,
		timeout:  defaultResolveTimeout,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the best-matching profile for name. Any failure (no
// candidates, HTTP or transport error, timeout, undecodable response) yields
// ok == false; the reason is logged, never returned.
func (r *Resolver) Resolve(ctx context.Context, name string) (profile types.AuthorProfile, ok bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.AuthorProfile{}, false
	}

	if err := r.throttle.Wait(ctx); err != nil {
		r.record(name, observability.OutcomeError, err)
		return types.AuthorProfile{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	candidates, err := r.searcher.SearchAuthors(callCtx, name)
	if err != nil {
		outcome := observability.OutcomeError
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = observability.OutcomeTimeout
		}
		r.record(name, outcome, err)
		return types.AuthorProfile{}, false
	}

	best, found := Pick(candidates, r.field)
	if !found {
		r.record(name, observability.OutcomeNotFound, nil)
		return types.AuthorProfile{}, false
	}
	r.record(name, observability.OutcomeFound, nil)
	return best.Profile(), true
}

func (r *Resolver) record(name, outcome string, err error) {
	r.metrics.ObserveResolution(outcome)
	if err != nil {
		r.logger.Warn().Err(err).Str("author", name).Str("outcome", outcome).Msg("author resolution failed")
		return
	}
	r.logger.Debug().Str("author", name).Str("outcome", outcome).Msg("author resolution")
}

// Pick chooses among same-name candidates. Candidates with at least one
// paper tagged with field (case-insensitive) are preferred; within the
// preferred set, or all candidates if none qualify, the highest citation
// count wins and the earliest candidate wins ties.
func Pick(candidates []Candidate, field string) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	pool := candidates
	if field != "" {
		var tagged []Candidate
		for _, c := range candidates {
			if hasField(c, field) {
				tagged = append(tagged, c)
			}
		}
		if len(tagged) > 0 {
			pool = tagged
		}
	}
	best := pool[0]
	for _, c := range pool[1:] {
		if c.CitationCount > best.CitationCount {
			best = c
		}
	}
	return best, true
}

func hasField(c Candidate, field string) bool {
	for _, p := range c.Papers {
		for _, f := range p.FieldsOfStudy {
			if strings.EqualFold(f, field) {
				return true
			}
		}
	}
	return false
}
