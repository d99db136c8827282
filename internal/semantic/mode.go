// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import "fmt"

// Mode controls how aggressively a query is broadened with related terms.
type Mode int

const (
	// ModeConservative records synonyms but leaves the expanded term set
	// at the originals plus abbreviation expansions.
	ModeConservative Mode = iota

	// ModeModerate additionally adds lexicon synonyms to the expanded set.
	ModeModerate

	// ModeAggressive additionally pulls in domain-cluster terms.
	ModeAggressive
)

func (m Mode) String() string {
	switch m {
	case ModeConservative:
		return "conservative"
	case ModeModerate:
		return "moderate"
	case ModeAggressive:
		return "aggressive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode string into a Mode. Unrecognized values are an
// error rather than a silent default so caller mistakes surface early.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "conservative":
		return ModeConservative, nil
	case "moderate":
		return ModeModerate, nil
	case "aggressive":
		return ModeAggressive, nil
	default:
		return 0, fmt.Errorf("unknown expansion mode %q (want conservative, moderate, or aggressive)", s)
	}
}
