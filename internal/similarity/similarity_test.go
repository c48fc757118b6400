package similarity

import (
	"testing"

	"github.com/amreid/nextup/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScore_IdenticalTokenSets(t *testing.T) {
	assert.Equal(t, 1.0, Score("a b c", "a b c"))
	assert.Equal(t, 1.0, Score("A B C", "a b c"), "case-insensitive")
	assert.Equal(t, 1.0, Score("a a b c", "a b c"), "duplicate words collapse")
}

func TestScore_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, Score("a b", "c d"))
}

func TestScore_Blank(t *testing.T) {
	assert.Equal(t, 0.0, Score("", "x"))
	assert.Equal(t, 0.0, Score("x", ""))
	assert.Equal(t, 0.0, Score("   ", "x"))
	assert.Equal(t, 0.0, Score("", ""))
}

func TestScore_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"write blog post", "write short blog post"},
		{"learn go generics", "practice go"},
		{"a b c d", "c d e f"},
	}
	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]), "Score(%q, %q)", p[0], p[1])
	}
}

func TestScore_PartialOverlap(t *testing.T) {
	// {a b c} vs {b c d}: intersection 2, union 4
	assert.InDelta(t, 0.5, Score("a b c", "b c d"), 1e-9)
}

func TestThresholdFor(t *testing.T) {
	assert.Equal(t, 0.75, ThresholdFor(domain.UniquenessFamiliar))
	assert.Equal(t, 0.60, ThresholdFor(domain.UniquenessRelated))
	assert.Equal(t, 0.40, ThresholdFor(domain.UniquenessNovel))
	assert.Equal(t, 0.60, ThresholdFor(domain.Uniqueness("bogus")), "unknown falls back to moderate")
}

func TestTooSimilar_ThresholdOrdering(t *testing.T) {
	// {a b c} vs {b c d} scores 0.5: flagged under novel (0.40), not familiar (0.75).
	title := "a b c"
	refs := []string{"b c d"}

	assert.True(t, TooSimilar(title, "zz", refs, ThresholdFor(domain.UniquenessNovel)))
	assert.False(t, TooSimilar(title, "zz", refs, ThresholdFor(domain.UniquenessFamiliar)))
}

func TestTooSimilar_ChecksBothTitleAndNextAction(t *testing.T) {
	refs := []string{"water the plants"}

	assert.True(t, TooSimilar("water the plants", "unrelated step", refs, 0.6))
	assert.True(t, TooSimilar("unrelated title", "water the plants", refs, 0.6))
	assert.False(t, TooSimilar("unrelated title", "unrelated step", refs, 0.6))
}

func TestTooSimilar_SkipsBlankReferences(t *testing.T) {
	refs := []string{"", "   ", "water the plants"}
	assert.True(t, TooSimilar("water the plants", "x", refs, 0.6))
	assert.False(t, TooSimilar("something else entirely", "x", []string{"", "  "}, 0.1))
}
