// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"regexp"
	"time"
)

// categoryPattern accepts arXiv category codes such as "cs.LG", "math.AG",
// "hep-th" or "q-bio.NC".
var categoryPattern = regexp.MustCompile(`^[a-z][a-z-]*(\.[A-Za-z][A-Za-z-]*)?$`)

// SearchParams is the per-run configuration surface supplied by the
// presentation layer.
type SearchParams struct {
	// Categories lists the arXiv category codes to search (at least one).
	Categories []string `json:"categories" yaml:"categories"`

	// From and To bound the submission date range, inclusive on both days.
	From time.Time `json:"from" yaml:"from"`
	To   time.Time `json:"to" yaml:"to"`

	// MaxResults caps the number of papers requested from arXiv.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// AuthorLimit keeps only the first N authors of each paper.
	AuthorLimit int `json:"author_limit" yaml:"author_limit"`

	// MinHIndex and MaxHIndex bound the h-index of retained authors, inclusive.
	MinHIndex int `json:"min_h_index" yaml:"min_h_index"`
	MaxHIndex int `json:"max_h_index" yaml:"max_h_index"`

	// Keywords is a boolean keyword expression or a comma-separated term list
	// matched against abstracts. Empty disables the filter.
	Keywords string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Validate checks the parameters before any network call is made.
func (p SearchParams) Validate() error {
	if len(p.Categories) == 0 {
		return &ValidationError{Field: "categories", Message: "at least one category is required"}
	}
	for _, c := range p.Categories {
		if !categoryPattern.MatchString(c) {
			return &ValidationError{Field: "categories", Message: fmt.Sprintf("invalid category code %q", c)}
		}
	}
	if p.From.IsZero() || p.To.IsZero() {
		return &ValidationError{Field: "date_range", Message: "start and end dates are required"}
	}
	if p.To.Before(p.From) {
		return &ValidationError{
			Field:   "date_range",
			Message: fmt.Sprintf("end date %s is before start date %s", p.To.Format(DateLayout), p.From.Format(DateLayout)),
		}
	}
	if p.MaxResults <= 0 {
		return &ValidationError{Field: "max_results", Message: "must be positive"}
	}
	if p.AuthorLimit <= 0 {
		return &ValidationError{Field: "author_limit", Message: "must be positive"}
	}
	if p.MinHIndex < 0 {
		return &ValidationError{Field: "min_h_index", Message: "must not be negative"}
	}
	if p.MinHIndex > p.MaxHIndex {
		return &ValidationError{
			Field:   "h_index",
			Message: fmt.Sprintf("minimum h-index %d is greater than maximum %d", p.MinHIndex, p.MaxHIndex),
		}
	}
	return nil
}

// DateLayout is the calendar-date format accepted on the command line and
// over HTTP.
const DateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" or the compact "20060102" form.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{DateLayout, "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}
