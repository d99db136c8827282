// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders search results in the supported display and
// file formats: a detailed console listing, a compact table, Markdown,
// and JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paperfinder/pkg/types"
)

// Format selects how results are rendered.
type Format string

const (
	FormatConsole  Format = "console"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat converts a user-supplied string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatConsole, FormatTable, FormatMarkdown, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want console, table, markdown, or json)", s)
	}
}

const dateFmt = "2006-01-02"

// Write renders papers (and their summaries, keyed by arXiv ID) to w in
// the given format. Summaries may be nil.
func Write(w io.Writer, format Format, papers []types.Paper, summaries map[string]string) error {
	switch format {
	case FormatConsole:
		writeConsole(w, papers, summaries)
		return nil
	case FormatTable:
		writeTable(w, papers)
		return nil
	case FormatMarkdown:
		writeMarkdown(w, papers, summaries)
		return nil
	case FormatJSON:
		return writeJSON(w, papers, summaries)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeConsole renders the full per-paper listing: metadata, abstract,
// and summary when present.
func writeConsole(w io.Writer, papers []types.Paper, summaries map[string]string) {
	fmt.Fprintf(w, "Search results (%d papers)\n\n", len(papers))

	for i, p := range papers {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(w, "   Authors:    %s\n", formatAuthors(p.Authors, 3))
		fmt.Fprintf(w, "   ArXiv ID:   %s\n", p.ArxivID)
		fmt.Fprintf(w, "   Published:  %s\n", p.Published.Format(dateFmt))
		fmt.Fprintf(w, "   Categories: %s\n", strings.Join(p.Categories, ", "))
		fmt.Fprintf(w, "   PDF:        %s\n", p.PDFURL)
		fmt.Fprintf(w, "\n   Abstract:\n%s\n", indent(p.Abstract, "   "))

		if s := summaries[p.ArxivID]; s != "" {
			fmt.Fprintf(w, "\n   Summary:\n%s\n", indent(s, "   "))
		}

		if i < len(papers)-1 {
			fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("-", 80))
		}
	}
}

// writeTable renders one row per paper with fixed-width columns.
func writeTable(w io.Writer, papers []types.Paper) {
	fmt.Fprintf(w, "%-4s  %-40s  %-25s  %-12s  %s\n",
		"Rank", "Title", "Authors", "Published", "ArXiv ID")
	fmt.Fprintln(w, strings.Repeat("-", 105))

	for i, p := range papers {
		title := p.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		authors := formatAuthors(p.Authors, 2)
		if len(authors) > 25 {
			authors = authors[:22] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-40s  %-25s  %-12s  %s\n",
			i+1, title, authors, p.Published.Format(dateFmt), p.ArxivID)
	}

	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

// writeMarkdown renders a Markdown document with one section per paper.
func writeMarkdown(w io.Writer, papers []types.Paper, summaries map[string]string) {
	fmt.Fprintf(w, "# ArXiv Paper Search Results\n\n")

	for i, p := range papers {
		fmt.Fprintf(w, "## %d. %s\n\n", i+1, p.Title)
		fmt.Fprintf(w, "**Authors:** %s\n\n", strings.Join(p.Authors, ", "))
		fmt.Fprintf(w, "**ArXiv ID:** %s\n\n", p.ArxivID)
		fmt.Fprintf(w, "**Published:** %s\n\n", p.Published.Format(dateFmt))
		fmt.Fprintf(w, "**Categories:** %s\n\n", strings.Join(p.Categories, ", "))
		fmt.Fprintf(w, "**PDF URL:** %s\n\n", p.PDFURL)
		fmt.Fprintf(w, "### Abstract\n\n%s\n\n", p.Abstract)

		if s := summaries[p.ArxivID]; s != "" {
			fmt.Fprintf(w, "### Summary\n\n%s\n\n", s)
		}

		fmt.Fprintf(w, "---\n\n")
	}
}

// jsonDocument is the JSON envelope written by writeJSON.
type jsonDocument struct {
	SearchResults []jsonPaper `json:"search_results"`
	TotalPapers   int         `json:"total_papers"`
}

type jsonPaper struct {
	types.Paper
	Summary string `json:"summary,omitempty"`
}

func writeJSON(w io.Writer, papers []types.Paper, summaries map[string]string) error {
	doc := jsonDocument{
		SearchResults: make([]jsonPaper, 0, len(papers)),
		TotalPapers:   len(papers),
	}
	for _, p := range papers {
		doc.SearchResults = append(doc.SearchResults, jsonPaper{
			Paper:   p,
			Summary: summaries[p.ArxivID],
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// formatAuthors joins up to max author names, noting how many were
// elided.
func formatAuthors(authors []string, max int) string {
	if len(authors) <= max {
		return strings.Join(authors, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(authors[:max], ", "), len(authors)-max)
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
