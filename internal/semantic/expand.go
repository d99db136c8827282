// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import "strings"

// maxDomainExpansions caps how many domain-cluster terms join the expanded
// set in aggressive mode. The full cluster is still recorded in
// RelatedByTerm.
const maxDomainExpansions = 5

// Expansion is the result of expanding one query. It is freshly allocated
// per call and owned by the caller.
type Expansion struct {
	// OriginalTerms are the deduplicated key terms from the raw query,
	// in first appearance order.
	OriginalTerms []string

	// ExpandedTerms is OriginalTerms plus every synonym, abbreviation,
	// and domain addition selected under the active mode. OriginalTerms
	// is always a subset.
	ExpandedTerms []string

	// SynonymsByTerm records lexicon synonyms and abbreviation
	// expansions per original term, in lookup order.
	SynonymsByTerm map[string][]string

	// RelatedByTerm records domain-cluster terms per original term.
	// Populated only in aggressive mode.
	RelatedByTerm map[string][]string
}

// Expand broadens a query's key terms using the lexicon. Synonyms join the
// expanded set in moderate and aggressive modes; abbreviation expansions
// and reverse lookups are definitional and join in every mode; domain
// clusters join only in aggressive mode.
func (e *Engine) Expand(query string, mode Mode) Expansion {
	original := e.ExtractKeyTerms(query)

	exp := Expansion{
		OriginalTerms:  original,
		SynonymsByTerm: make(map[string][]string),
		RelatedByTerm:  make(map[string][]string),
	}

	inExpanded := make(map[string]bool, len(original))
	add := func(t string) {
		if !inExpanded[t] {
			inExpanded[t] = true
			exp.ExpandedTerms = append(exp.ExpandedTerms, t)
		}
	}
	for _, t := range original {
		add(t)
	}

	for _, term := range original {
		lower := strings.ToLower(term)

		if syns, ok := e.lex.synonymsFor(lower); ok {
			exp.SynonymsByTerm[term] = append([]string(nil), syns...)
			if mode == ModeModerate || mode == ModeAggressive {
				for _, s := range syns {
					add(s)
				}
			}
		}

		if full, ok := e.lex.expandAbbreviation(strings.ToUpper(term)); ok {
			add(full)
			exp.SynonymsByTerm[term] = append(exp.SynonymsByTerm[term], full)
		}

		for _, abbr := range e.lex.abbreviationsFor(lower) {
			add(abbr)
			exp.SynonymsByTerm[term] = append(exp.SynonymsByTerm[term], abbr)
		}

		if mode == ModeAggressive {
			domainKey := strings.ReplaceAll(lower, " ", "_")
			if related, ok := e.lex.domainTerms(domainKey); ok {
				exp.RelatedByTerm[term] = append([]string(nil), related...)
				limit := min(maxDomainExpansions, len(related))
				for _, r := range related[:limit] {
					add(r)
				}
			}
		}
	}

	return exp
}
