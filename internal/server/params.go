// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/author-scout/pkg/types"
)

// ParseParams reads search parameters from query values, starting from
// defaults. category may repeat or hold a comma-separated list. Malformed
// values yield a *types.ValidationError; range checks are left to
// SearchParams.Validate.
func ParseParams(q url.Values, defaults types.SearchParams) (types.SearchParams, error) {
	p := defaults

	if cats := splitList(q["category"]); len(cats) > 0 {
		p.Categories = cats
	}

	dates := []struct {
		key string
		dst *time.Time
	}{
		{"from", &p.From},
		{"to", &p.To},
	}
	for _, f := range dates {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		t, err := types.ParseDate(v)
		if err != nil {
			return p, &types.ValidationError{Field: f.key, Message: err.Error()}
		}
		*f.dst = t
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"max_results", &p.MaxResults},
		{"author_limit", &p.AuthorLimit},
		{"min_h", &p.MinHIndex},
		{"max_h", &p.MaxHIndex},
	}
	for _, f := range ints {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, &types.ValidationError{Field: f.key, Message: fmt.Sprintf("not an integer: %q", v)}
		}
		*f.dst = n
	}

	if q.Has("keywords") {
		p.Keywords = q.Get("keywords")
	}
	return p, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
