// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() SearchParams {
	return SearchParams{
		Categories:  []string{"cs.LG", "hep-th", "q-bio.NC"},
		From:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MaxResults:  10,
		AuthorLimit: 5,
		MinHIndex:   0,
		MaxHIndex:   0,
	}
}

func TestSearchParamsValidate(t *testing.T) {
	require.NoError(t, validParams().Validate())

	tests := []struct {
		name   string
		mutate func(p *SearchParams)
		field  string
	}{
		{"no categories", func(p *SearchParams) { p.Categories = nil }, "categories"},
		{"bad category", func(p *SearchParams) { p.Categories = []string{"cs.LG", "CS LG"} }, "categories"},
		{"injected category", func(p *SearchParams) { p.Categories = []string{"cs.LG+OR+all:x"} }, "categories"},
		{"missing from", func(p *SearchParams) { p.From = time.Time{} }, "date_range"},
		{"to before from", func(p *SearchParams) { p.To = p.From.AddDate(0, 0, -1) }, "date_range"},
		{"zero max results", func(p *SearchParams) { p.MaxResults = 0 }, "max_results"},
		{"zero author limit", func(p *SearchParams) { p.AuthorLimit = 0 }, "author_limit"},
		{"negative min h", func(p *SearchParams) { p.MinHIndex = -1 }, "min_h_index"},
		{"min above max", func(p *SearchParams) { p.MinHIndex, p.MaxHIndex = 10, 5 }, "h_index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()

			assert.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-02-29", "20240229"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "2023-02-29", "29/02/2024", "yesterday"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Stage: "keywords", Fragment: "(A AND B", Offset: 0, Reason: "unmatched '('"}
	assert.Equal(t, `keywords: parse error at offset 0 near "(A AND B": unmatched '('`, err.Error())

	cause := errors.New("unexpected EOF")
	wrapped := fmt.Errorf("fetching papers: %w", &ParseError{Stage: "arxiv", Offset: -1, Reason: "decoding Atom feed", Err: cause})
	assert.ErrorIs(t, wrapped, ErrParse)
	assert.ErrorIs(t, wrapped, cause)
	assert.NotErrorIs(t, wrapped, ErrFetch)
	assert.Equal(t, "fetching papers: arxiv: parse error: decoding Atom feed: unexpected EOF", wrapped.Error())
}

func TestFetchError(t *testing.T) {
	tests := []struct {
		err  *FetchError
		want string
	}{
		{&FetchError{Source: "arxiv", StatusCode: 503}, "arxiv: API returned HTTP 503"},
		{&FetchError{Source: "arxiv", Err: context.DeadlineExceeded}, "arxiv: request failed: context deadline exceeded"},
		{&FetchError{Source: "semantic_scholar"}, "semantic_scholar: request failed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
		assert.ErrorIs(t, tt.err, ErrFetch)
	}
	assert.ErrorIs(t, &FetchError{Source: "arxiv", Err: context.DeadlineExceeded}, context.DeadlineExceeded)
}

func TestAffiliationList(t *testing.T) {
	r := AuthorRecord{Profile: AuthorProfile{Affiliations: []string{"MIT", "CSAIL"}}}
	assert.Equal(t, "MIT, CSAIL", r.AffiliationList())
	assert.Equal(t, "", AuthorRecord{}.AffiliationList())
}
