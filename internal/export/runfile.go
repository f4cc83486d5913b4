// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/author-scout/pkg/types"
)

// RunFile is the on-disk record of one ranking run: the parameters, the
// ranked records and the run counts. A saved run can be rendered again
// without re-querying the APIs.
type RunFile struct {
	Params  RunParams            `yaml:"params"`
	Records []types.AuthorRecord `yaml:"records"`
	Summary RunSummary           `yaml:"summary"`
}

// RunParams stores the search parameters in a serializable form.
type RunParams struct {
	Categories  []string `yaml:"categories"`
	From        string   `yaml:"from"`
	To          string   `yaml:"to"`
	MaxResults  int      `yaml:"max_results"`
	AuthorLimit int      `yaml:"author_limit"`
	MinHIndex   int      `yaml:"min_h_index"`
	MaxHIndex   int      `yaml:"max_h_index"`
	Keywords    string   `yaml:"keywords,omitempty"`
}

// RunSummary stores the run counts, baseline and a timestamp.
type RunSummary struct {
	Records         int            `yaml:"records"`
	PapersFetched   int            `yaml:"papers_fetched"`
	PapersMatched   int            `yaml:"papers_matched"`
	DistinctAuthors int            `yaml:"distinct_authors"`
	AuthorsResolved int            `yaml:"authors_resolved"`
	PairsJoined     int            `yaml:"pairs_joined"`
	Baseline        types.Baseline `yaml:"baseline"`
	Timestamp       time.Time      `yaml:"timestamp"`
}

// NewRunFile builds a RunFile from a finished run.
func NewRunFile(params types.SearchParams, out *types.RankOutput, now time.Time) RunFile {
	return RunFile{
		Params: RunParams{
			Categories:  params.Categories,
			From:        params.From.Format(types.DateLayout),
			To:          params.To.Format(types.DateLayout),
			MaxResults:  params.MaxResults,
			AuthorLimit: params.AuthorLimit,
			MinHIndex:   params.MinHIndex,
			MaxHIndex:   params.MaxHIndex,
			Keywords:    params.Keywords,
		},
		Records: out.Records,
		Summary: RunSummary{
			Records:         len(out.Records),
			PapersFetched:   out.PapersFetched,
			PapersMatched:   out.PapersMatched,
			DistinctAuthors: out.DistinctAuthors,
			AuthorsResolved: out.AuthorsResolved,
			PairsJoined:     out.PairsJoined,
			Baseline:        out.Baseline,
			Timestamp:       now.UTC(),
		},
	}
}

// WriteRunFile saves a run to a YAML file.
func WriteRunFile(path string, params types.SearchParams, out *types.RankOutput) error {
	rf := NewRunFile(params, out, time.Now())
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}

// ToParams converts stored parameters back into SearchParams.
func (p RunParams) ToParams() (types.SearchParams, error) {
	params := types.SearchParams{
		Categories:  p.Categories,
		MaxResults:  p.MaxResults,
		AuthorLimit: p.AuthorLimit,
		MinHIndex:   p.MinHIndex,
		MaxHIndex:   p.MaxHIndex,
		Keywords:    p.Keywords,
	}
	from, err := types.ParseDate(p.From)
	if err != nil {
		return params, fmt.Errorf("invalid from: %w", err)
	}
	to, err := types.ParseDate(p.To)
	if err != nil {
		return params, fmt.Errorf("invalid to: %w", err)
	}
	params.From, params.To = from, to
	return params, nil
}

// Output reconstructs the RankOutput stored in the file.
func (rf *RunFile) Output() *types.RankOutput {
	return &types.RankOutput{
		Records:         rf.Records,
		PapersFetched:   rf.Summary.PapersFetched,
		PapersMatched:   rf.Summary.PapersMatched,
		DistinctAuthors: rf.Summary.DistinctAuthors,
		AuthorsResolved: rf.Summary.AuthorsResolved,
		PairsJoined:     rf.Summary.PairsJoined,
		Baseline:        rf.Summary.Baseline,
	}
}
