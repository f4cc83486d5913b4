// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"time"

	"github.com/pdiddy/author-scout/internal/arxiv"
	"github.com/pdiddy/author-scout/internal/httputil"
	"github.com/pdiddy/author-scout/internal/rank"
	"github.com/pdiddy/author-scout/internal/scholar"
	"github.com/pdiddy/author-scout/pkg/types"
)

// defaultWindow is the submission window used when no dates are given.
const defaultWindow = 7 * 24 * time.Hour

// newPipeline builds a ranking pipeline from the loaded configuration. Every
// run served by the returned pipeline shares one Semantic Scholar throttle.
func newPipeline(cfg *types.Config) *rank.Pipeline {
	client := &http.Client{}

	fetcher := arxiv.NewFetcher(client, cfg.Arxiv, app.logger)

	searcher := scholar.NewClient(client, cfg.Scholar)
	resolver := scholar.NewResolver(searcher,
		httputil.NewThrottle(cfg.Scholar.RequestInterval),
		scholar.WithFieldOfStudy(cfg.Scholar.FieldOfStudy),
		scholar.WithTimeout(cfg.Scholar.Timeout),
		scholar.WithLogger(app.logger),
		scholar.WithMetrics(app.metrics),
	)

	return &rank.Pipeline{
		Papers:      fetcher,
		Authors:     resolver,
		Concurrency: cfg.Rank.Concurrency,
		Logger:      app.logger.With().Str("component", "rank").Logger(),
		Metrics:     app.metrics,
	}
}

// defaultParams returns the run parameters implied by configuration alone.
// Categories are left empty and the date window ends today.
func defaultParams(cfg *types.Config, now time.Time) types.SearchParams {
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return types.SearchParams{
		From:        to.Add(-defaultWindow),
		To:          to,
		MaxResults:  cfg.Arxiv.MaxResults,
		AuthorLimit: cfg.Arxiv.AuthorLimit,
		MinHIndex:   cfg.Rank.MinHIndex,
		MaxHIndex:   cfg.Rank.MaxHIndex,
	}
}
