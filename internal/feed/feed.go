// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed retrieves arXiv result feeds and decodes them into Entries.
package feed

import (
	"context"
	"errors"

	"github.com/pdiddy/arxiv-trends/pkg/types"
)

// ErrAPI reports an error entry returned by the arXiv API in place of results.
var ErrAPI = errors.New("arXiv API error")

// Source turns a serialized query URL into an ordered sequence of entries.
// The arXiv client and the on-disk cache both implement it.
type Source interface {
	Fetch(ctx context.Context, url string) ([]types.Entry, error)
}

// Feed is a decoded result page.
type Feed struct {
	// TotalResults is the number of matches arXiv reports for the query,
	// which can exceed len(Entries) when max_results truncates the page.
	TotalResults int
	Entries      []types.Entry
}
