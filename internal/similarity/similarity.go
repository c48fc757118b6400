// Package similarity implements the uniqueness guard for generated
// suggestions: a deliberately crude bag-of-words Jaccard measure. It is the
// sole defense against the generative path repeating itself.
package similarity

import (
	"strings"

	"github.com/amreid/nextup/internal/domain"
)

// Thresholds above which a suggestion counts as "too similar" to a reference
// text, by uniqueness preference. Familiar is loose, novel is strict.
const (
	ThresholdFamiliar = 0.75
	ThresholdRelated  = 0.60
	ThresholdNovel    = 0.40
)

// ThresholdFor maps a uniqueness preference to its similarity threshold.
// Unknown values fall back to the moderate default.
func ThresholdFor(u domain.Uniqueness) float64 {
	switch u {
	case domain.UniquenessFamiliar:
		return ThresholdFamiliar
	case domain.UniquenessNovel:
		return ThresholdNovel
	default:
		return ThresholdRelated
	}
}

// Score returns the Jaccard index over lower-cased word tokens of a and b:
// |A ∩ B| / |A ∪ B| with set semantics (duplicate words collapse).
// Either side blank yields 0. Symmetric by construction.
func Score(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// TooSimilar reports whether any reference text scores at or above threshold
// against either the title or the next action. Blank references are skipped.
func TooSimilar(title, nextAction string, referenceTexts []string, threshold float64) bool {
	for _, ref := range referenceTexts {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		if Score(title, ref) >= threshold {
			return true
		}
		if Score(nextAction, ref) >= threshold {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}
