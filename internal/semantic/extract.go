// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import (
	"regexp"
	"strings"
	"unicode"
)

// stopWords are dropped during term extraction. Quoted phrases bypass
// this filter entirely.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "will": true,
	"with": true, "using": true, "based": true, "approach": true, "method": true,
}

// quotedPhrasePattern captures double-quoted substrings verbatim.
var quotedPhrasePattern = regexp.MustCompile(`"([^"]*)"`)

// minTermLength is the shortest token kept without an abbreviation match.
const minTermLength = 2

// ExtractKeyTerms extracts the meaningful terms from a raw query:
// lowercased tokens surviving the stop-word and length filters (known
// abbreviations such as "AI" pass regardless of length), double-quoted
// phrases taken verbatim from the original query, and adjacent word pairs
// that match a synonym lexicon key. The result is deduplicated, in first
// appearance order.
func (e *Engine) ExtractKeyTerms(query string) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}

	for _, tok := range splitTerms(strings.ToLower(query)) {
		if stopWords[tok] {
			continue
		}
		if len(tok) > minTermLength || e.lex.isAbbreviation(strings.ToUpper(tok)) {
			add(tok)
		}
	}

	// Quoted phrases are kept verbatim and skip all filtering.
	for _, m := range quotedPhrasePattern.FindAllStringSubmatch(query, -1) {
		add(m[1])
	}

	// Adjacent word pairs count only when the compound is a lexicon key.
	words := strings.Fields(query)
	for i := 0; i+1 < len(words); i++ {
		if len(words[i]) <= minTermLength || len(words[i+1]) <= minTermLength {
			continue
		}
		compound := strings.ToLower(words[i] + " " + words[i+1])
		if _, ok := e.lex.synonymsFor(compound); ok {
			add(compound)
		}
	}

	return terms
}

// splitTerms splits on commas, whitespace, hyphens, and underscores.
func splitTerms(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '-' || r == '_' || unicode.IsSpace(r)
	})
}
