// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/author-scout/internal/arxiv"
	"github.com/pdiddy/author-scout/internal/observability"
	"github.com/pdiddy/author-scout/pkg/types"
)

// fakeResolver serves profiles from a map and records every lookup.
type fakeResolver struct {
	profiles map[string]types.AuthorProfile
	delay    func() time.Duration

	mu       sync.Mutex
	calls    map[string]int
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func newFakeResolver(profiles map[string]types.AuthorProfile) *fakeResolver {
	return &fakeResolver{profiles: profiles, calls: make(map[string]int)}
}

func (f *fakeResolver) Resolve(ctx context.Context, name string) (types.AuthorProfile, bool) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()

	if f.delay != nil {
		select {
		case <-time.After(f.delay()):
		case <-ctx.Done():
			return types.AuthorProfile{}, false
		}
	}
	p, ok := f.profiles[name]
	return p, ok
}

// fakeSource returns fixed papers or an error.
type fakeSource struct {
	papers []types.Paper
	err    error
	calls  int
}

func (f *fakeSource) Fetch(_ context.Context, _ arxiv.FetchParams) ([]types.Paper, error) {
	f.calls++
	return f.papers, f.err
}

func validParams() types.SearchParams {
	return types.SearchParams{
		Categories:  []string{"cs.LG"},
		From:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		MaxResults:  10,
		AuthorLimit: 2,
		MinHIndex:   1,
		MaxHIndex:   25,
	}
}

const threePapers = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2401.00003v1</id>
    <published>2024-01-20T00:00:00Z</published>
    <title>Sparse Transformers</title>
    <summary>A transformer with sparse attention.</summary>
    <author><name>Alice Smith</name></author>
    <author><name>Bob Jones</name></author>
    <author><name>Carol White</name></author>
    <category term="cs.LG"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2401.00002v1</id>
    <published>2024-01-10T00:00:00Z</published>
    <title>Convolutions Suffice</title>
    <summary>Attention is not needed; convolution only.</summary>
    <author><name>Dave Brown</name></author>
    <author><name>Eve Black</name></author>
    <category term="cs.LG"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2401.00001v1</id>
    <published>2024-01-05T00:00:00Z</published>
    <title>Scaling Laws</title>
    <summary>TRANSFORMER models and ATTENTION heads.</summary>
    <author><name>Bob Jones</name></author>
    <author><name>Frank Green</name></author>
    <author><name>Grace Hall</name></author>
    <category term="cs.LG"/>
  </entry>
</feed>`

func TestPipelineEndToEnd(t *testing.T) {
	var searchQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searchQuery = r.URL.Query().Get("search_query")
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, threePapers)
	}))
	defer ts.Close()

	resolver := newFakeResolver(map[string]types.AuthorProfile{
		"Alice Smith": {AuthorID: "1", Name: "Alice Smith", PaperCount: 50, CitationCount: 5000, HIndex: 20},
		"Bob Jones":   {AuthorID: "2", Name: "Bob Jones", PaperCount: 9, CitationCount: 800, HIndex: 8},
		"Frank Green": {AuthorID: "3", Name: "Frank Green", PaperCount: 12, CitationCount: 100, HIndex: 5},
		"Carol White": {AuthorID: "4", Name: "Carol White", PaperCount: 99, CitationCount: 99999, HIndex: 24},
		"Dave Brown":  {AuthorID: "5", Name: "Dave Brown", PaperCount: 99, CitationCount: 99999, HIndex: 24},
	})
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	p := &Pipeline{
		Papers:  arxiv.NewFetcher(ts.Client(), types.ArxivConfig{BaseURL: ts.URL}, zerolog.Nop()),
		Authors: resolver,
		Logger:  zerolog.Nop(),
		Metrics: metrics,
	}
	params := validParams()
	params.Keywords = "transformer AND attention"

	out, err := p.Run(context.Background(), params)
	require.NoError(t, err)

	assert.Contains(t, searchQuery, "cat:cs.LG")
	assert.Equal(t, 3, out.PapersFetched)
	assert.Equal(t, 2, out.PapersMatched)
	assert.Equal(t, 3, out.DistinctAuthors)
	assert.Equal(t, 3, out.AuthorsResolved)
	assert.Equal(t, 4, out.PairsJoined)

	assert.Equal(t, map[string]int{"Alice Smith": 1, "Bob Jones": 1, "Frank Green": 1}, resolver.calls)

	require.Len(t, out.Records, 2)
	assert.Equal(t, "Alice Smith", out.Records[0].Author)
	assert.Equal(t, "http://arxiv.org/abs/2401.00003v1", out.Records[0].PaperID)
	assert.Equal(t, "Frank Green", out.Records[1].Author)
	assert.Equal(t, "http://arxiv.org/abs/2401.00001v1", out.Records[1].PaperID)

	assert.InDelta(t, 1675.0, out.Baseline.MeanCitations, 1e-9)
	assert.InDelta(t, 8.0, out.Baseline.MedianHIndex, 1e-9)
	assert.InDelta(t, 20.0, out.Baseline.MeanPaperCount, 1e-9)
	assert.Equal(t,
		"Above-average citation impact with 5000 citations | Strong h-index of 20 | Productive researcher with 50 publications",
		out.Records[0].Insights)
	assert.Empty(t, out.Records[1].Insights)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsStarted))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.PapersFetched))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RecordsRanked))
}

func TestPipelineValidationPrecedesFetch(t *testing.T) {
	src := &fakeSource{}
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	p := &Pipeline{Papers: src, Authors: newFakeResolver(nil), Logger: zerolog.Nop(), Metrics: metrics}

	params := validParams()
	params.Categories = nil
	_, err := p.Run(context.Background(), params)

	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Zero(t, src.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsFailed.WithLabelValues("validation")))
}

func TestPipelineKeywordErrorPrecedesFetch(t *testing.T) {
	for _, kw := range []string{"(transformer AND attention", "   ", "AND attention"} {
		t.Run(kw, func(t *testing.T) {
			src := &fakeSource{}
			metrics := observability.NewMetrics(prometheus.NewRegistry())
			p := &Pipeline{Papers: src, Authors: newFakeResolver(nil), Logger: zerolog.Nop(), Metrics: metrics}

			params := validParams()
			params.Keywords = kw
			_, err := p.Run(context.Background(), params)

			assert.ErrorIs(t, err, types.ErrParse)
			assert.Zero(t, src.calls)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsStarted))
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsFailed.WithLabelValues("parse")))
		})
	}
}

func TestPipelineFetchErrorAborts(t *testing.T) {
	resolver := newFakeResolver(nil)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	p := &Pipeline{
		Papers:  &fakeSource{err: &types.FetchError{Source: "arxiv", StatusCode: http.StatusServiceUnavailable}},
		Authors: resolver,
		Logger:  zerolog.Nop(),
		Metrics: metrics,
	}

	out, err := p.Run(context.Background(), validParams())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, types.ErrFetch)
	assert.True(t, strings.HasPrefix(err.Error(), "fetching papers: "))
	assert.Empty(t, resolver.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsFailed.WithLabelValues("fetch")))
}

func TestPipelineNoPapers(t *testing.T) {
	p := &Pipeline{Papers: &fakeSource{}, Authors: newFakeResolver(nil), Logger: zerolog.Nop()}
	out, err := p.Run(context.Background(), validParams())
	require.NoError(t, err)
	assert.Empty(t, out.Records)
	assert.Equal(t, types.Baseline{}, out.Baseline)
}

func manyAuthorPapers(n int) ([]types.Paper, map[string]types.AuthorProfile) {
	profiles := make(map[string]types.AuthorProfile)
	var papers []types.Paper
	for i := range n {
		name := fmt.Sprintf("Author %02d", i)
		profiles[name] = types.AuthorProfile{Name: name, PaperCount: 20, CitationCount: 200, HIndex: 10}
		papers = append(papers, types.Paper{ID: fmt.Sprintf("p%02d", i), Authors: []string{name}})
	}
	return papers, profiles
}

func TestPipelineBoundsConcurrencyAndKeepsOrder(t *testing.T) {
	papers, profiles := manyAuthorPapers(12)
	resolver := newFakeResolver(profiles)
	resolver.delay = func() time.Duration { return time.Duration(rand.IntN(5)) * time.Millisecond }

	p := &Pipeline{Papers: &fakeSource{papers: papers}, Authors: resolver, Concurrency: 3, Logger: zerolog.Nop()}
	out, err := p.Run(context.Background(), validParams())
	require.NoError(t, err)

	assert.LessOrEqual(t, resolver.maxSeen.Load(), int32(3))
	require.Len(t, out.Records, 12)
	for i, r := range out.Records {
		assert.Equal(t, fmt.Sprintf("p%02d", i), r.PaperID)
	}
}

func TestPipelineDropsUnresolved(t *testing.T) {
	papers := []types.Paper{{ID: "p1", Authors: []string{"Known", "Unknown"}}}
	resolver := newFakeResolver(map[string]types.AuthorProfile{
		"Known": {Name: "Known", PaperCount: 10, CitationCount: 100, HIndex: 3},
	})
	p := &Pipeline{Papers: &fakeSource{papers: papers}, Authors: resolver, Logger: zerolog.Nop()}

	out, err := p.Run(context.Background(), validParams())
	require.NoError(t, err)
	assert.Equal(t, 2, out.DistinctAuthors)
	assert.Equal(t, 1, out.AuthorsResolved)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Known", out.Records[0].Author)
}

func TestPipelineCancelled(t *testing.T) {
	papers, profiles := manyAuthorPapers(6)
	resolver := newFakeResolver(profiles)
	resolver.delay = func() time.Duration { return time.Second }

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	p := &Pipeline{Papers: &fakeSource{papers: papers}, Authors: resolver, Logger: zerolog.Nop()}
	start := time.Now()
	_, err := p.Run(ctx, validParams())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "validation", errorKind(&types.ValidationError{Field: "x"}))
	assert.Equal(t, "parse", errorKind(fmt.Errorf("wrap: %w", &types.ParseError{Stage: "query"})))
	assert.Equal(t, "fetch", errorKind(&types.FetchError{Source: "arxiv"}))
	assert.Equal(t, "canceled", errorKind(context.Canceled))
	assert.Equal(t, "other", errorKind(fmt.Errorf("boom")))
}
