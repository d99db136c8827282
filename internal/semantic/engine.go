// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package semantic expands free-text queries into broader boolean search
// expressions using static synonym, abbreviation, and domain-cluster
// tables, and re-ranks retrieved papers by a term-match heuristic.
//
// Expansion is purely table-driven and deterministic: there is no learned
// similarity, no I/O, and no state beyond the read-only lexicon.
package semantic

// Engine exposes query expansion, search-expression building, relevance
// ranking, and expansion tracing. All engines share one immutable lexicon,
// so methods are safe for concurrent use from any number of callers.
type Engine struct {
	lex *Lexicon
}

// NewEngine returns an Engine backed by the built-in academic lexicon.
func NewEngine() *Engine {
	return &Engine{lex: defaultLexicon}
}
