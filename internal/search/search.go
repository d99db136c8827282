// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search turns a free-text research question into an expanded
// boolean expression, queries a paper API, and returns the results
// re-ranked by semantic relevance.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/paperfinder/internal/semantic"
	"github.com/pdiddy/paperfinder/pkg/types"
)

// Backend searches a single academic API. It consumes the boolean search
// expression produced by the semantic engine (Strategy pattern; tests
// supply a mock).
type Backend interface {
	Name() string
	Search(ctx context.Context, expression string, cfg types.SearchConfig) ([]types.Paper, error)
}

// Query holds one search run's parameters.
type Query struct {
	// Text is the raw research question.
	Text string

	// Mode selects the expansion policy for building the search expression.
	Mode semantic.Mode

	// Category optionally restricts results to an arXiv category.
	Category string

	// DateFrom and DateTo bound the publication date, inclusive.
	// Filtering happens client-side after retrieval.
	DateFrom time.Time
	DateTo   time.Time
}

// Output holds the ranked results and the expression that produced them.
type Output struct {
	Papers     []types.Paper
	Expression string
}

const dateFmt = "2006-01-02"

// Run executes one search: build the expanded expression, query the
// backend, filter by date, and re-rank by relevance to the original
// question. Ranking always expands in moderate mode internally, so the
// query's Mode only shapes what the backend sees.
func Run(ctx context.Context, eng *semantic.Engine, backend Backend, q Query, cfg types.SearchConfig) (Output, error) {
	if strings.TrimSpace(q.Text) == "" {
		return Output{}, fmt.Errorf("query is empty: provide a research question")
	}

	expr := eng.BuildQuery(q.Text, q.Mode)
	if q.Category != "" {
		expr = "cat:" + q.Category + " AND " + expr
	}

	papers, err := backend.Search(ctx, expr, cfg)
	if err != nil {
		return Output{}, fmt.Errorf("%s search: %w", backend.Name(), err)
	}

	papers = filterByDate(papers, q.DateFrom, q.DateTo)
	papers = eng.Rank(papers, q.Text)

	if cfg.MaxResults > 0 && len(papers) > cfg.MaxResults {
		papers = papers[:cfg.MaxResults]
	}

	return Output{Papers: papers, Expression: expr}, nil
}

// filterByDate drops papers outside the inclusive date range. Comparison
// is on calendar dates, not timestamps.
func filterByDate(papers []types.Paper, from, to time.Time) []types.Paper {
	if from.IsZero() && to.IsZero() {
		return papers
	}

	var kept []types.Paper
	for _, p := range papers {
		day := p.Published.Format(dateFmt)
		if !from.IsZero() && day < from.Format(dateFmt) {
			continue
		}
		if !to.IsZero() && day > to.Format(dateFmt) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
