// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"testing"
	"time"

	"github.com/pdiddy/paperfinder/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.LibraryConfig{Dir: t.TempDir(), MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testPaper(id, title, abstract string) types.Paper {
	return types.Paper{
		ArxivID:    id,
		Title:      title,
		Authors:    []string{"First Author", "Second Author"},
		Abstract:   abstract,
		PDFURL:     "https://arxiv.org/pdf/" + id,
		Published:  time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		Categories: []string{"cs.AI"},
	}
}

// --- Save / List ---

func TestSaveAndList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	papers := []types.Paper{
		testPaper("2301.00001", "Transformer Models", "attention architectures"),
		testPaper("2301.00002", "Graph Networks", "message passing"),
	}
	summaries := map[string]string{"2301.00001": "a summary of transformers"}

	if err := store.Save(ctx, papers, summaries, "general"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(entries))
	}

	byID := map[string]Entry{}
	for _, e := range entries {
		byID[e.ArxivID] = e
	}

	first := byID["2301.00001"]
	if first.Title != "Transformer Models" {
		t.Errorf("title = %q", first.Title)
	}
	if len(first.Authors) != 2 || first.Authors[0] != "First Author" {
		t.Errorf("authors = %v", first.Authors)
	}
	if !first.Published.Equal(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("published = %v", first.Published)
	}
	if first.Summary != "a summary of transformers" || first.SummaryType != "general" {
		t.Errorf("summary = %q (%q)", first.Summary, first.SummaryType)
	}
	if first.SavedAt.IsZero() {
		t.Error("saved_at not recorded")
	}

	second := byID["2301.00002"]
	if second.Summary != "" || second.SummaryType != "" {
		t.Errorf("unsummarized paper has summary %q (%q)", second.Summary, second.SummaryType)
	}
}

func TestSaveUpsert(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	paper := testPaper("2301.00001", "Old Title", "abstract")
	if err := store.Save(ctx, []types.Paper{paper}, map[string]string{"2301.00001": "the summary"}, "general"); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	// Re-saving without a summary refreshes metadata but keeps the
	// stored summary.
	paper.Title = "New Title"
	if err := store.Save(ctx, []types.Paper{paper}, nil, ""); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List returned %d entries, want 1", len(entries))
	}
	if entries[0].Title != "New Title" {
		t.Errorf("title = %q, want New Title", entries[0].Title)
	}
	if entries[0].Summary != "the summary" || entries[0].SummaryType != "general" {
		t.Errorf("summary lost on re-save: %q (%q)", entries[0].Summary, entries[0].SummaryType)
	}
}

func TestListLimit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	var papers []types.Paper
	for _, id := range []string{"2301.00001", "2301.00002", "2301.00003"} {
		papers = append(papers, testPaper(id, "Paper "+id, "abstract"))
	}
	if err := store.Save(ctx, papers, nil, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("List returned %d entries, want 2", len(entries))
	}
}

// --- Search ---

func TestSearch(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	papers := []types.Paper{
		testPaper("2301.00001", "Transformer Models", "attention architectures for translation"),
		testPaper("2301.00002", "Graph Networks", "message passing on graphs"),
	}
	summaries := map[string]string{"2301.00002": "covers spectral convolution methods"}
	if err := store.Save(ctx, papers, summaries, "general"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name   string
		query  string
		wantID string
	}{
		{"matches title", "transformer", "2301.00001"},
		{"matches abstract", "translation", "2301.00001"},
		{"matches summary", "spectral", "2301.00002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.Search(ctx, tt.query, 0)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(entries) != 1 || entries[0].ArxivID != tt.wantID {
				t.Errorf("Search(%q) = %v, want single hit %s", tt.query, entries, tt.wantID)
			}
		})
	}
}

func TestSearchNoMatches(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, []types.Paper{testPaper("2301.00001", "Title", "abstract")}, nil, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := store.Search(ctx, "zxqv", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Search returned %d entries, want 0", len(entries))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	store := testStore(t)
	if _, err := store.Search(context.Background(), "", 0); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestSearchIndexFollowsDelete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, []types.Paper{testPaper("2301.00001", "Transformer Models", "abstract")}, nil, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(ctx, "2301.00001"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	entries, err := store.Search(ctx, "transformer", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("removed paper still searchable: %v", entries)
	}
}

// --- Remove / Count ---

func TestRemove(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, []types.Paper{testPaper("2301.00001", "Title", "abstract")}, nil, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(ctx, "2301.00001"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, "2301.00001"); err == nil {
		t.Error("expected error removing unknown paper")
	}
}

func TestCount(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	n, err := store.Count(ctx)
	if err != nil || n != 0 {
		t.Errorf("Count = %d, %v, want 0", n, err)
	}

	papers := []types.Paper{
		testPaper("2301.00001", "A", "a"),
		testPaper("2301.00002", "B", "b"),
	}
	if err := store.Save(ctx, papers, nil, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	n, err = store.Count(ctx)
	if err != nil || n != 2 {
		t.Errorf("Count = %d, %v, want 2", n, err)
	}
}

func TestNewStoreRequiresDir(t *testing.T) {
	if _, err := NewStore(types.LibraryConfig{}); err == nil {
		t.Error("expected error for empty library dir")
	}
}

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single term", "transformer", `"transformer"`},
		{"multiple terms", "graph networks", `"graph" "networks"`},
		{"fts operator neutralized", "cats OR dogs", `"cats" "OR" "dogs"`},
		{"embedded quote", `say "hi"`, `"say" """hi"""`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeQuery(tt.input); got != tt.want {
				t.Errorf("EscapeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
