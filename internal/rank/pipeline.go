// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank runs the author-ranking pipeline: fetch recent arXiv papers,
// filter them by keyword, resolve each distinct author on Semantic Scholar,
// then filter, sort and annotate the joined records.
package rank

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/author-scout/internal/arxiv"
	"github.com/pdiddy/author-scout/internal/observability"
	"github.com/pdiddy/author-scout/internal/query"
	"github.com/pdiddy/author-scout/pkg/types"
)

// DefaultConcurrency is the number of author resolutions in flight when
// Pipeline.Concurrency is unset.
const DefaultConcurrency = 2

// PaperSource returns papers for a category and date window.
// *arxiv.Fetcher implements it.
type PaperSource interface {
	Fetch(ctx context.Context, p arxiv.FetchParams) ([]types.Paper, error)
}

// AuthorResolver maps a raw author name to a profile. A false result means
// the name could not be resolved; the pipeline drops that author.
// *scholar.Resolver implements it.
type AuthorResolver interface {
	Resolve(ctx context.Context, name string) (types.AuthorProfile, bool)
}

// Pipeline wires a paper source and an author resolver into a ranking run.
type Pipeline struct {
	Papers  PaperSource
	Authors AuthorResolver

	// Concurrency bounds parallel author resolutions. Values below 1 use
	// DefaultConcurrency. Request pacing is the resolver's concern.
	Concurrency int

	Logger  zerolog.Logger
	Metrics *observability.Metrics
}

// pair is one (paper, author) combination produced by expansion. name
// indexes the run's distinct-name list.
type pair struct {
	paper  *types.Paper
	author string
	name   int
}

// Run executes one ranking run. Parameters are validated and the keyword
// expression compiled before any network call. A fetch or keyword error
// aborts the run, as does cancellation of ctx; authors that fail to resolve
// are dropped.
func (p *Pipeline) Run(ctx context.Context, params types.SearchParams) (*types.RankOutput, error) {
	start := time.Now()
	p.Metrics.RecordRunStarted()

	if err := params.Validate(); err != nil {
		p.Metrics.RecordRunFailed(errorKind(err), time.Since(start))
		return nil, err
	}
	matcher, err := query.Compile(params.Keywords)
	if err != nil {
		p.Metrics.RecordRunFailed(errorKind(err), time.Since(start))
		return nil, fmt.Errorf("compiling keywords: %w", err)
	}

	logger := observability.WithRunContext(p.Logger, uuid.NewString(), params.Categories)
	ctx = logger.WithContext(ctx)

	out, err := p.run(ctx, logger, params, matcher)
	if err != nil {
		p.Metrics.RecordRunFailed(errorKind(err), time.Since(start))
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("ranking run failed")
		return nil, err
	}

	p.Metrics.RecordRunCompleted(out.PapersFetched, out.PapersMatched, len(out.Records), time.Since(start))
	logger.Info().
		Int("papers_fetched", out.PapersFetched).
		Int("papers_matched", out.PapersMatched).
		Int("distinct_authors", out.DistinctAuthors).
		Int("authors_resolved", out.AuthorsResolved).
		Int("pairs_joined", out.PairsJoined).
		Int("records", len(out.Records)).
		Dur("elapsed", time.Since(start)).
		Msg("ranking run complete")
	return out, nil
}

func (p *Pipeline) run(ctx context.Context, logger zerolog.Logger, params types.SearchParams, matcher query.Matcher) (*types.RankOutput, error) {
	papers, err := p.Papers.Fetch(ctx, arxiv.FetchParams{
		Categories:  params.Categories,
		From:        params.From,
		To:          params.To,
		MaxResults:  params.MaxResults,
		AuthorLimit: params.AuthorLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching papers: %w", err)
	}
	out := &types.RankOutput{PapersFetched: len(papers)}

	matched := FilterPapers(papers, matcher)
	out.PapersMatched = len(matched)
	logger.Debug().
		Int("fetched", len(papers)).
		Int("matched", len(matched)).
		Str("keywords", matcher.String()).
		Msg("papers filtered")

	pairs, names := expand(matched, params.AuthorLimit)
	out.DistinctAuthors = len(names)

	profiles, found, err := p.resolveAll(ctx, names)
	if err != nil {
		return nil, err
	}
	for _, ok := range found {
		if ok {
			out.AuthorsResolved++
		}
	}

	joined := make([]types.AuthorRecord, 0, len(pairs))
	for _, pr := range pairs {
		if !found[pr.name] {
			continue
		}
		joined = append(joined, types.AuthorRecord{
			Author:     pr.author,
			PaperID:    pr.paper.ID,
			PaperTitle: pr.paper.Title,
			Profile:    profiles[pr.name],
		})
	}
	out.PairsJoined = len(joined)

	out.Baseline = ComputeBaseline(joined)
	records := FilterRecords(joined, params.MinHIndex, params.MaxHIndex)
	SortRecords(records)
	for i := range records {
		records[i].Insights = Insights(records[i].Profile, out.Baseline)
	}
	out.Records = records
	return out, nil
}

// resolveAll resolves each distinct name once. Results are stored by name
// index so the output does not depend on completion order.
func (p *Pipeline) resolveAll(ctx context.Context, names []string) ([]types.AuthorProfile, []bool, error) {
	profiles := make([]types.AuthorProfile, len(names))
	found := make([]bool, len(names))

	limit := p.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profiles[i], found[i] = p.Authors.Resolve(gctx, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("resolving authors: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("resolving authors: %w", err)
	}
	return profiles, found, nil
}

// expand lists (paper, author) pairs in paper order then author order and
// the distinct author names in first-seen order. Only the first limit
// authors of each paper are used; blank names are skipped.
func expand(papers []types.Paper, limit int) ([]pair, []string) {
	var pairs []pair
	var names []string
	index := make(map[string]int)
	for i := range papers {
		authors := papers[i].Authors
		if limit > 0 && len(authors) > limit {
			authors = authors[:limit]
		}
		for _, author := range authors {
			name := strings.TrimSpace(author)
			if name == "" {
				continue
			}
			idx, ok := index[name]
			if !ok {
				idx = len(names)
				index[name] = idx
				names = append(names, name)
			}
			pairs = append(pairs, pair{paper: &papers[i], author: name, name: idx})
		}
	}
	return pairs, names
}

// errorKind classifies a run error for the runs_failed_total metric.
func errorKind(err error) string {
	switch {
	case errors.Is(err, types.ErrValidation):
		return "validation"
	case errors.Is(err, types.ErrParse):
		return "parse"
	case errors.Is(err, types.ErrFetch):
		return "fetch"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
