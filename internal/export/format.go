// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders ranked author records as a table, JSON, CSV, or a
// YAML run file.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/author-scout/pkg/types"
)

// Format names accepted by Write.
const (
	FormatNameTable = "table"
	FormatNameJSON  = "json"
	FormatNameCSV   = "csv"
)

// Write renders out in the named format.
func Write(w io.Writer, format string, out *types.RankOutput) error {
	switch strings.ToLower(format) {
	case "", FormatNameTable:
		FormatTable(out, w)
		return nil
	case FormatNameJSON:
		return FormatJSON(out, w)
	case FormatNameCSV:
		return WriteCSV(w, out.Records)
	default:
		return fmt.Errorf("unknown output format %q (want table, json or csv)", format)
	}
}

// FormatTable writes records as a human-readable table followed by the run
// counts.
func FormatTable(out *types.RankOutput, w io.Writer) {
	if len(out.Records) == 0 {
		fmt.Fprintln(w, "No authors matched.")
		writeCounts(out, w)
		return
	}

	fmt.Fprintf(w, "%-4s  %-24s  %-40s  %5s  %9s  %6s  %s\n",
		"Rank", "Author", "Paper", "H", "Citations", "Papers", "Affiliations")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range out.Records {
		fmt.Fprintf(w, "%-4d  %-24s  %-40s  %5d  %9d  %6d  %s\n",
			i+1,
			truncate(r.Author, 24),
			truncate(r.PaperTitle, 40),
			r.Profile.HIndex,
			r.Profile.CitationCount,
			r.Profile.PaperCount,
			truncate(r.AffiliationList(), 30))
		if r.Insights != "" {
			fmt.Fprintf(w, "      %s\n", r.Insights)
		}
	}
	fmt.Fprintln(w)
	writeCounts(out, w)
}

func writeCounts(out *types.RankOutput, w io.Writer) {
	fmt.Fprintf(w, "%d records from %d papers (%d matched keywords), %d of %d authors resolved\n",
		len(out.Records), out.PapersFetched, out.PapersMatched, out.AuthorsResolved, out.DistinctAuthors)
}

// FormatJSON writes the records as indented JSON.
func FormatJSON(out *types.RankOutput, w io.Writer) error {
	records := out.Records
	if records == nil {
		records = []types.AuthorRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
