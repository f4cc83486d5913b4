// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// AuthorProfile is the Semantic Scholar profile chosen for one raw author
// name. It is keyed by the name used to query it, not by Name, which is the
// spelling Semantic Scholar returns.
type AuthorProfile struct {
	AuthorID      string   `json:"author_id" yaml:"author_id"`
	Name          string   `json:"name" yaml:"name"`
	PaperCount    int      `json:"paper_count" yaml:"paper_count"`
	CitationCount int      `json:"citation_count" yaml:"citation_count"`
	HIndex        int      `json:"h_index" yaml:"h_index"`
	Affiliations  []string `json:"affiliations" yaml:"affiliations"`
	URL           string   `json:"url" yaml:"url"`
}

// AuthorRecord is one output row: a (paper, author) pair joined with the
// author's resolved profile. The same person appears once per qualifying
// paper.
type AuthorRecord struct {
	// Author is the display name as listed on the paper.
	Author string `json:"author" yaml:"author"`

	PaperID    string `json:"paper_id" yaml:"paper_id"`
	PaperTitle string `json:"paper_title" yaml:"paper_title"`

	Profile AuthorProfile `json:"profile" yaml:"profile"`

	// Insights holds the phrases comparing this author to the candidate
	// population, joined with InsightSeparator. Empty when none apply.
	Insights string `json:"insights" yaml:"insights"`
}

// InsightSeparator joins insight phrases within AuthorRecord.Insights.
const InsightSeparator = " | "

// AffiliationList returns the profile affiliations joined with ", ".
func (r AuthorRecord) AffiliationList() string {
	return strings.Join(r.Profile.Affiliations, ", ")
}

// Baseline is the population statistics insights are computed against. It is
// taken over every joined (paper, author) pair before the quality filter.
type Baseline struct {
	MeanCitations  float64 `json:"mean_citations" yaml:"mean_citations"`
	MedianHIndex   float64 `json:"median_h_index" yaml:"median_h_index"`
	MeanPaperCount float64 `json:"mean_paper_count" yaml:"mean_paper_count"`
}

// RankOutput holds the ranked records and the counts observed at each stage
// of a run.
type RankOutput struct {
	Records []AuthorRecord `json:"records" yaml:"records"`

	PapersFetched   int `json:"papers_fetched" yaml:"papers_fetched"`
	PapersMatched   int `json:"papers_matched" yaml:"papers_matched"`
	DistinctAuthors int `json:"distinct_authors" yaml:"distinct_authors"`
	AuthorsResolved int `json:"authors_resolved" yaml:"authors_resolved"`
	PairsJoined     int `json:"pairs_joined" yaml:"pairs_joined"`

	Baseline Baseline `json:"baseline" yaml:"baseline"`
}
