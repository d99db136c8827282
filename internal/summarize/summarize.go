// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize generates language-model summaries of papers. A
// Backend abstracts the model API so tests can supply a mock; Ollama and
// OpenAI-compatible servers are the two shipped implementations.
package summarize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pdiddy/paperfinder/pkg/types"
)

// maxContentChars caps how much paper text is sent to the model per
// request. Full texts routinely exceed context windows; the opening
// sections carry the abstract, introduction, and usually the key results.
const maxContentChars = 8000

// SummaryType selects which aspect of a paper the summary focuses on.
type SummaryType string

const (
	SummaryGeneral      SummaryType = "general"
	SummaryKeyFindings  SummaryType = "key_findings"
	SummaryMethods      SummaryType = "methods"
	SummaryImplications SummaryType = "implications"
)

// ParseSummaryType converts a user-supplied string to a SummaryType.
func ParseSummaryType(s string) (SummaryType, error) {
	switch SummaryType(s) {
	case SummaryGeneral, SummaryKeyFindings, SummaryMethods, SummaryImplications:
		return SummaryType(s), nil
	default:
		return "", fmt.Errorf("unknown summary type %q (want general, key_findings, methods, or implications)", s)
	}
}

// Backend abstracts the language-model API so tests can supply a mock.
// Each implementation answers a single prompt with the model's text.
type Backend interface {
	Name() string
	Summarize(ctx context.Context, prompt string) (string, error)
}

// summaryInstructions holds the per-type prompt preamble.
var summaryInstructions = map[SummaryType]string{
	SummaryGeneral: `Summarize this academic paper in approximately 200-300 words. Focus on:
1. The main research question or problem
2. The approach or methodology used
3. Key findings or results
4. Significance and implications

Text to summarize:`,
	SummaryKeyFindings: `Extract and summarize the key findings from this academic paper. Focus only on:
1. Main results and discoveries
2. Important data or evidence presented
3. Conclusions drawn by the authors

Text to summarize:`,
	SummaryMethods: `Summarize the methodology and approach used in this academic paper. Focus on:
1. Research methods employed
2. Experimental design or theoretical approach
3. Data sources and analysis techniques
4. Any novel methodological contributions

Text to summarize:`,
	SummaryImplications: `Analyze the implications and significance of this academic paper. Focus on:
1. Broader impact on the field
2. Practical applications
3. Future research directions suggested
4. How this work advances current knowledge

Text to summarize:`,
}

// summaryPromptTmpl assembles the full prompt from the per-type
// instructions, the paper title, and the (truncated) content.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`{{.Instructions}}

Title: {{.Title}}

{{.Content}}`))

// BuildPrompt renders the prompt for one paper, truncating content that
// exceeds the per-request cap.
func BuildPrompt(st SummaryType, title, content string) (string, error) {
	instructions, ok := summaryInstructions[st]
	if !ok {
		return "", fmt.Errorf("unknown summary type %q", st)
	}
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	var buf bytes.Buffer
	err := summaryPromptTmpl.Execute(&buf, struct {
		Instructions, Title, Content string
	}{instructions, title, content})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BatchSummary holds counts from a batch summarization run.
type BatchSummary struct {
	Summarized int
	Failed     int
}

// HasFailures reports whether any papers failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// SummarizeAll generates a summary for each paper, keyed by arXiv ID.
// content supplies the text to summarize for a paper (full text or
// abstract). Failures are reported on w and skipped; the remaining
// papers are still summarized.
func SummarizeAll(ctx context.Context, backend Backend, papers []types.Paper, st SummaryType, content func(context.Context, types.Paper) string, w io.Writer) (map[string]string, BatchSummary) {
	summaries := make(map[string]string, len(papers))
	var summary BatchSummary

	for i, paper := range papers {
		fmt.Fprintf(w, "summarizing %d/%d: %s\n", i+1, len(papers), truncateTitle(paper.Title))

		prompt, err := BuildPrompt(st, paper.Title, content(ctx, paper))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", paper.ArxivID, err)
			summary.Failed++
			continue
		}

		text, err := backend.Summarize(ctx, prompt)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", paper.ArxivID, err)
			summary.Failed++
			continue
		}

		summaries[paper.ArxivID] = strings.TrimSpace(text)
		summary.Summarized++
	}

	return summaries, summary
}

// maxTitleChars bounds progress lines to roughly one terminal row.
const maxTitleChars = 50

func truncateTitle(title string) string {
	if len(title) <= maxTitleChars {
		return title
	}
	return title[:maxTitleChars] + "..."
}
