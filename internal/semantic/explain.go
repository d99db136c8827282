// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import (
	"fmt"
	"strings"
)

// maxExplainedTerms caps how many synonyms or related terms are shown per
// original term in the trace.
const maxExplainedTerms = 3

// Explain renders a human-readable trace of how a query was expanded:
// the original query, the mode, each term's top synonyms and related
// terms, and the final boolean search expression. It is a formatting view
// over Expand and BuildQuery with no logic of its own.
func (e *Engine) Explain(query string, mode Mode) string {
	exp := e.Expand(query, mode)

	var b strings.Builder
	fmt.Fprintf(&b, "Original query: '%s'\n", query)
	fmt.Fprintf(&b, "Expansion mode: %s\n", mode)

	if len(exp.SynonymsByTerm) > 0 {
		b.WriteString("\nSynonyms found:\n")
		writeTermLists(&b, exp.OriginalTerms, exp.SynonymsByTerm)
	}

	if len(exp.RelatedByTerm) > 0 {
		b.WriteString("\nRelated terms:\n")
		writeTermLists(&b, exp.OriginalTerms, exp.RelatedByTerm)
	}

	fmt.Fprintf(&b, "\nExpanded search query:\n%s\n", e.BuildQuery(query, mode))
	return b.String()
}

func writeTermLists(b *strings.Builder, order []string, byTerm map[string][]string) {
	for _, term := range order {
		entries := byTerm[term]
		if len(entries) == 0 {
			continue
		}
		if len(entries) > maxExplainedTerms {
			entries = entries[:maxExplainedTerms]
		}
		fmt.Fprintf(b, "  - %s: %s\n", term, strings.Join(entries, ", "))
	}
}
