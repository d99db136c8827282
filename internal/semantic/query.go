// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import "strings"

const (
	// maxSynonymsPerClause caps how many synonyms are quoted per OR-clause.
	maxSynonymsPerClause = 3

	// conservativeClauses and moderateClauses cap the clause count joined
	// into the final expression for those modes. Aggressive uses all.
	conservativeClauses = 2
	moderateClauses     = 4
)

// BuildQuery renders a boolean search expression for the query under the
// given mode: the parenthesized original query OR-joined with per-term
// synonym clauses. It is pure string composition; the search transport is
// assumed to accept AND/OR grouping with parentheses and double-quoted
// literals.
func (e *Engine) BuildQuery(query string, mode Mode) string {
	exp := e.Expand(query, mode)

	clauses := []string{"(" + query + ")"}
	for _, term := range exp.OriginalTerms {
		syns := exp.SynonymsByTerm[term]
		if len(syns) == 0 {
			continue
		}
		if len(syns) > maxSynonymsPerClause {
			syns = syns[:maxSynonymsPerClause]
		}
		quoted := make([]string, len(syns))
		for i, s := range syns {
			quoted[i] = `"` + s + `"`
		}
		clauses = append(clauses, "("+strings.Join(quoted, " OR ")+")")
	}

	switch mode {
	case ModeConservative:
		if len(clauses) > 1 {
			return strings.Join(clauses[:conservativeClauses], " OR ")
		}
		return clauses[0]
	case ModeModerate:
		if len(clauses) > moderateClauses {
			return strings.Join(clauses[:moderateClauses], " OR ")
		}
		return strings.Join(clauses, " OR ")
	default:
		return strings.Join(clauses, " OR ")
	}
}
