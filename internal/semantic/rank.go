// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import (
	"sort"
	"strings"

	"github.com/pdiddy/paperfinder/pkg/types"
)

// Scoring weights. Matching is plain substring containment, so a short
// term can match inside a longer unrelated word; that imprecision is part
// of the heuristic. Categories are matched against original terms only:
// they are short taxonomy codes where synonym hits would be noise.
const (
	originalTermWeight = 2.0
	expandedTermWeight = 0.5
	categoryWeight     = 0.3
)

type scoredPaper struct {
	paper types.Paper
	score float64
}

// Rank returns the papers reordered by descending relevance to the
// original query, ties broken by newer publication date. The result is a
// permutation of the input; the input slice is not modified. Expansion
// always runs in moderate mode here, regardless of the mode used to build
// the search expression.
func (e *Engine) Rank(papers []types.Paper, originalQuery string) []types.Paper {
	exp := e.Expand(originalQuery, ModeModerate)

	original := make(map[string]bool, len(exp.OriginalTerms))
	for _, t := range exp.OriginalTerms {
		original[strings.ToLower(t)] = true
	}
	expanded := make(map[string]bool, len(exp.ExpandedTerms))
	for _, t := range exp.ExpandedTerms {
		expanded[strings.ToLower(t)] = true
	}

	scored := make([]scoredPaper, len(papers))
	for i, p := range papers {
		scored[i] = scoredPaper{paper: p, score: score(p, original, expanded)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].paper.Published.After(scored[j].paper.Published)
	})

	ranked := make([]types.Paper, len(scored))
	for i, sp := range scored {
		ranked[i] = sp.paper
	}
	return ranked
}

func score(p types.Paper, original, expanded map[string]bool) float64 {
	text := strings.ToLower(p.Title + " " + p.Abstract)

	var total float64
	for term := range original {
		if strings.Contains(text, term) {
			total += originalTermWeight
		}
	}
	for term := range expanded {
		if original[term] {
			continue
		}
		if strings.Contains(text, term) {
			total += expandedTermWeight
		}
	}
	for _, cat := range p.Categories {
		lc := strings.ToLower(cat)
		for term := range original {
			if strings.Contains(lc, term) {
				total += categoryWeight
				break
			}
		}
	}
	return total
}
