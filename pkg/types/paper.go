// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the author-scout pipeline:
// fetched papers, resolved author profiles, ranked author records, run
// parameters, configuration and the error taxonomy shared by all stages.
package types

import "time"

// Paper holds the metadata of one arXiv entry as consumed by the ranking
// pipeline. Papers are immutable once fetched.
type Paper struct {
	// ID is the entry identifier as returned by arXiv
	// (e.g. "http://arxiv.org/abs/2301.07041v1").
	ID string `json:"id" yaml:"id"`

	// ArxivID is the short arXiv identifier with the version suffix removed
	// (e.g. "2301.07041").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title with whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper summary with whitespace collapsed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Published is the first-version submission timestamp.
	Published time.Time `json:"published" yaml:"published"`

	// Categories lists the arXiv category terms attached to the entry.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Authors lists author display names in source order, truncated to the
	// per-paper author limit.
	Authors []string `json:"authors" yaml:"authors"`
}
