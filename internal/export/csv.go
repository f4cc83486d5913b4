// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/author-scout/pkg/types"
)

// CSVHeader lists the CSV columns in order.
var CSVHeader = []string{
	"author",
	"paper_id",
	"paper_title",
	"paper_count",
	"citation_count",
	"h_index",
	"insights",
	"affiliations",
	"profile_url",
}

// WriteCSV writes a header row and one row per record, in order.
func WriteCSV(w io.Writer, records []types.AuthorRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Author,
			r.PaperID,
			r.PaperTitle,
			strconv.Itoa(r.Profile.PaperCount),
			strconv.Itoa(r.Profile.CitationCount),
			strconv.Itoa(r.Profile.HIndex),
			r.Insights,
			r.AffiliationList(),
			r.Profile.URL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", r.Author, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
