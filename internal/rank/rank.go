// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/author-scout/internal/query"
	"github.com/pdiddy/author-scout/pkg/types"
)

// Fixed quality thresholds applied to every resolved author.
const (
	MinPaperCount    = 10
	MinCitationCount = 100
)

// FilterPapers returns the papers whose abstract matches m, in input order.
func FilterPapers(papers []types.Paper, m query.Matcher) []types.Paper {
	if m.MatchAll() {
		return papers
	}
	abstracts := make([]string, len(papers))
	for i, p := range papers {
		abstracts[i] = p.Abstract
	}
	mask := m.Mask(abstracts)
	var out []types.Paper
	for i, keep := range mask {
		if keep {
			out = append(out, papers[i])
		}
	}
	return out
}

// FilterRecords keeps records whose profile has at least MinPaperCount
// papers, at least MinCitationCount citations, and an h-index within
// [minH, maxH]. Order is preserved.
func FilterRecords(records []types.AuthorRecord, minH, maxH int) []types.AuthorRecord {
	out := make([]types.AuthorRecord, 0, len(records))
	for _, r := range records {
		pr := r.Profile
		if pr.PaperCount < MinPaperCount || pr.CitationCount < MinCitationCount {
			continue
		}
		if pr.HIndex < minH || pr.HIndex > maxH {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortRecords orders records by h-index then citation count, both
// descending. Ties keep their relative order.
func SortRecords(records []types.AuthorRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Profile, records[j].Profile
		if a.HIndex != b.HIndex {
			return a.HIndex > b.HIndex
		}
		return a.CitationCount > b.CitationCount
	})
}

// ComputeBaseline returns the mean citation count, median h-index and mean
// paper count over records. An empty slice yields a zero Baseline.
func ComputeBaseline(records []types.AuthorRecord) types.Baseline {
	n := len(records)
	if n == 0 {
		return types.Baseline{}
	}
	var citations, papers float64
	hs := make([]int, n)
	for i, r := range records {
		citations += float64(r.Profile.CitationCount)
		papers += float64(r.Profile.PaperCount)
		hs[i] = r.Profile.HIndex
	}
	return types.Baseline{
		MeanCitations:  citations / float64(n),
		MedianHIndex:   median(hs),
		MeanPaperCount: papers / float64(n),
	}
}

func median(vals []int) float64 {
	s := append([]int(nil), vals...)
	sort.Ints(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return float64(s[mid])
	}
	return float64(s[mid-1]+s[mid]) / 2
}

// Insights describes how a profile compares to the baseline. Each phrase
// applies when the value strictly exceeds the baseline statistic.
func Insights(p types.AuthorProfile, b types.Baseline) string {
	var parts []string
	if float64(p.CitationCount) > b.MeanCitations {
		parts = append(parts, fmt.Sprintf("Above-average citation impact with %d citations", p.CitationCount))
	}
	if float64(p.HIndex) > b.MedianHIndex {
		parts = append(parts, fmt.Sprintf("Strong h-index of %d", p.HIndex))
	}
	if float64(p.PaperCount) > b.MeanPaperCount {
		parts = append(parts, fmt.Sprintf("Productive researcher with %d publications", p.PaperCount))
	}
	return strings.Join(parts, types.InsightSeparator)
}
