package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const arxivFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <title>Attention Is All
  You Need</title>
    <summary>The dominant sequence transduction models
  are based on complex recurrent networks.</summary>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <category term="cs.CL"/>
    <category term="cs.LG"/>
    <link title="pdf" href="http://arxiv.org/pdf/1706.03762v7"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>Second Paper</title>
    <summary>Abstract two.</summary>
    <published>2023-01-17T00:00:00Z</published>
    <author><name>Someone Else</name></author>
    <category term="cs.AI"/>
  </entry>
</feed>`

func newArxivTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	t.Cleanup(func() { arxivAPIBase = old })

	return ts
}

func TestArxivSearchParsesFeed(t *testing.T) {
	ts := newArxivTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, arxivFeedXML)
	})

	b := &ArxivBackend{Client: ts.Client()}
	papers, err := b.Search(context.Background(), "(attention)", testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}

	p := papers[0]
	if p.ArxivID != "1706.03762" {
		t.Errorf("ArxivID = %q, want version suffix stripped", p.ArxivID)
	}
	if p.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q, want feed newlines collapsed", p.Title)
	}
	if p.Abstract != "The dominant sequence transduction models are based on complex recurrent networks." {
		t.Errorf("Abstract = %q, want whitespace collapsed", p.Abstract)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "Ashish Vaswani" {
		t.Errorf("Authors = %v", p.Authors)
	}
	if len(p.Categories) != 2 || p.Categories[0] != "cs.CL" {
		t.Errorf("Categories = %v", p.Categories)
	}
	if p.PDFURL != "http://arxiv.org/pdf/1706.03762v7" {
		t.Errorf("PDFURL = %q, want the feed pdf link", p.PDFURL)
	}
	if p.Published.Year() != 2017 {
		t.Errorf("Published = %v", p.Published)
	}

	// An entry without a pdf link falls back to the canonical endpoint.
	if papers[1].PDFURL != arxivPDFBase+"2301.07041" {
		t.Errorf("fallback PDFURL = %q", papers[1].PDFURL)
	}
}

func TestArxivSearchRequestParams(t *testing.T) {
	var captured *http.Request
	ts := newArxivTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `<feed xmlns="http://www.w3.org/2005/Atom"></feed>`)
	})

	cfg := testCfg()
	cfg.MaxResults = 7

	b := &ArxivBackend{Client: ts.Client()}
	expr := `(AI) OR ("artificial intelligence")`
	if _, err := b.Search(context.Background(), expr, cfg); err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := captured.URL.Query()
	if got := q.Get("search_query"); got != expr {
		t.Errorf("search_query = %q, want %q", got, expr)
	}
	if got := q.Get("max_results"); got != "7" {
		t.Errorf("max_results = %q, want 7", got)
	}
	if got := q.Get("sortBy"); got != "relevance" {
		t.Errorf("sortBy = %q", got)
	}
	if got := captured.Header.Get("User-Agent"); got != "test/0.1" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestArxivSearchEmptyExpression(t *testing.T) {
	b := &ArxivBackend{Client: http.DefaultClient}
	if _, err := b.Search(context.Background(), "", testCfg()); err == nil {
		t.Error("Search with empty expression succeeded, want error")
	}
}

func TestArxivSearchHTTPError(t *testing.T) {
	ts := newArxivTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	b := &ArxivBackend{Client: ts.Client()}
	if _, err := b.Search(context.Background(), "(x)", testCfg()); err == nil {
		t.Error("Search succeeded despite HTTP 400")
	}
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		idURL string
		want  string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"http://arxiv.org/abs/hep-th/9901001v2", "hep-th/9901001"},
		{"http://example.com/nothing", ""},
	}
	for _, tt := range tests {
		if got := extractArxivID(tt.idURL); got != tt.want {
			t.Errorf("extractArxivID(%q) = %q, want %q", tt.idURL, got, tt.want)
		}
	}
}
