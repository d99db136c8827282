// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import (
	"testing"
	"time"

	"github.com/pdiddy/paperfinder/pkg/types"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func TestRankRelevantFirst(t *testing.T) {
	eng := NewEngine()

	papers := []types.Paper{
		{ArxivID: "b", Title: "unrelated topic", Published: day(2)},
		{ArxivID: "a", Title: "deep learning survey", Published: day(1)},
	}

	ranked := eng.Rank(papers, "deep learning")
	if ranked[0].ArxivID != "a" {
		t.Errorf("ranked order = [%s %s], want the matching paper first", ranked[0].ArxivID, ranked[1].ArxivID)
	}
}

func TestRankIsPermutation(t *testing.T) {
	eng := NewEngine()

	papers := []types.Paper{
		{ArxivID: "1", Title: "machine learning"},
		{ArxivID: "2", Title: "quantum computing"},
		{ArxivID: "3", Title: "unrelated"},
		{ArxivID: "4", Title: "transformer models"},
	}

	ranked := eng.Rank(papers, "machine learning")
	if len(ranked) != len(papers) {
		t.Fatalf("len(ranked) = %d, want %d", len(ranked), len(papers))
	}

	seen := make(map[string]int)
	for _, p := range ranked {
		seen[p.ArxivID]++
	}
	for _, p := range papers {
		if seen[p.ArxivID] != 1 {
			t.Errorf("paper %s appears %d times in ranked output", p.ArxivID, seen[p.ArxivID])
		}
	}
}

func TestRankTiesBrokenByRecency(t *testing.T) {
	eng := NewEngine()

	papers := []types.Paper{
		{ArxivID: "old", Title: "no overlap here", Published: day(1)},
		{ArxivID: "new", Title: "still no overlap", Published: day(20)},
		{ArxivID: "mid", Title: "nothing shared either", Published: day(10)},
	}

	ranked := eng.Rank(papers, "zxqv")
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if ranked[i].ArxivID != id {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].ArxivID, id)
		}
	}
}

func TestRankEmptyInput(t *testing.T) {
	eng := NewEngine()

	if got := eng.Rank(nil, "machine learning"); len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}

// --- scoring ---

func TestScoreWeights(t *testing.T) {
	original := map[string]bool{"learning": true}
	expanded := map[string]bool{"learning": true, "statistical learning": true}

	tests := []struct {
		name  string
		paper types.Paper
		want  float64
	}{
		{
			"original term in title",
			types.Paper{Title: "learning to rank"},
			originalTermWeight,
		},
		{
			"hyphenated text does not match",
			types.Paper{Abstract: "we use statistical lea-rning"},
			0,
		},
		{
			"partial phrase does not match",
			types.Paper{Abstract: "statistical study"},
			0,
		},
		{
			"original plus category",
			types.Paper{Title: "learning survey", Categories: []string{"cs.learning-theory"}},
			originalTermWeight + categoryWeight,
		},
		{
			"category matched at most once per category entry",
			types.Paper{Categories: []string{"learning.learning"}},
			categoryWeight,
		},
		{
			"no match",
			types.Paper{Title: "quantum gravity", Abstract: "holography"},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := score(tt.paper, original, expanded); got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreExpandedTermWeight(t *testing.T) {
	original := map[string]bool{"ml": true}
	expanded := map[string]bool{"ml": true, "statistical learning": true}

	p := types.Paper{Abstract: "a statistical learning treatment"}
	// "ml" does not appear; only the expanded-only term matches.
	want := expandedTermWeight
	if got := score(p, original, expanded); got != want {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestScoreCategoryIgnoresExpandedTerms(t *testing.T) {
	// The asymmetry is deliberate: categories are taxonomy codes, so only
	// original terms are checked against them.
	original := map[string]bool{"vision": true}
	expanded := map[string]bool{"vision": true, "cv": true}

	p := types.Paper{Categories: []string{"cs.CV"}}
	if got := score(p, original, expanded); got != 0 {
		t.Errorf("score = %v, want 0: expanded terms must not match categories", got)
	}
}

func TestScoreSubstringMatching(t *testing.T) {
	// Matching is substring containment, not word-boundary matching.
	original := map[string]bool{"ai": true}
	expanded := map[string]bool{"ai": true}

	p := types.Paper{Title: "maintaining distributed systems"}
	if got := score(p, original, expanded); got != originalTermWeight {
		t.Errorf("score = %v, want %v: substring matches are accepted", got, originalTermWeight)
	}
}
