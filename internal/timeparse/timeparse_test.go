package timeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Units(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"45m", 45},
		{"45 min", 45},
		{"45mins", 45},
		{"2h", 120},
		{"2hr", 120},
		{"2 hrs", 120},
		{"1.5h", 90},
		{"2 hours", 120},
		{"1d", 1440},
		{"1 day", 1440},
		{"2days", 2880},
		{"90", 90},
		{"  90  ", 90},
		{"2H", 120},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.input)
		require.True(t, ok, "Parse(%q) should be valid", tc.input)
		assert.Equal(t, tc.want, got, "Parse(%q)", tc.input)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "0", "0m", "-5m", "abc", "5x", "m", "1.2.3", "5 m 3"} {
		_, ok := Parse(input)
		assert.False(t, ok, "Parse(%q) should be invalid", input)
	}
}

func TestParse_ClampsAtThirtyDays(t *testing.T) {
	got, ok := Parse("31d")
	require.True(t, ok)
	assert.Equal(t, MaxMinutes, got)

	got, ok = Parse("100000")
	require.True(t, ok)
	assert.Equal(t, MaxMinutes, got)
}

func TestParse_RoundsFractionalMinutes(t *testing.T) {
	got, ok := Parse("0.4")
	// rounds to 0, which is rejected
	assert.False(t, ok, "0.4 minutes rounds to zero")
	assert.Equal(t, 0, got)

	got, ok = Parse("0.6")
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestFromNumber(t *testing.T) {
	got, ok := FromNumber(90)
	require.True(t, ok)
	assert.Equal(t, 90, got)

	got, ok = FromNumber(90.6)
	require.True(t, ok)
	assert.Equal(t, 91, got)

	_, ok = FromNumber(0)
	assert.False(t, ok)
	_, ok = FromNumber(-10)
	assert.False(t, ok)

	got, ok = FromNumber(MaxMinutes + 500)
	require.True(t, ok)
	assert.Equal(t, MaxMinutes, got)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "45m", Format(45))
	assert.Equal(t, "0m", Format(0))
	assert.Equal(t, "0m", Format(-3))
	assert.Equal(t, "1h", Format(60))
	assert.Equal(t, "2h", Format(120))
	assert.Equal(t, "1h 30m", Format(90))
	assert.Equal(t, "5h", Format(300))
	assert.Equal(t, "24h", Format(1440))
}

// Formatting is lossy in unit choice but must preserve the minute count:
// re-parsing the formatted string denotes the same minutes.
func TestFormatParseRoundTrip(t *testing.T) {
	for _, minutes := range []int{1, 45, 59, 60, 61, 90, 120, 300, 1440, 10000, MaxMinutes} {
		formatted := Format(minutes)
		total := 0
		// Format emits either "Nm", "Nh", or "Nh Mm"; Parse handles each part.
		for _, part := range splitParts(formatted) {
			n, ok := Parse(part)
			require.True(t, ok, "re-parsing %q part %q", formatted, part)
			total += n
		}
		assert.Equal(t, minutes, total, "round trip of %d via %q", minutes, formatted)
	}
}

func splitParts(s string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			if i > start {
				parts = append(parts, s[start:i])
			}
			start = i + 1
		}
	}
	return parts
}
