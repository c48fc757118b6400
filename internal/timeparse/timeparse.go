// Package timeparse converts flexible human time expressions ("45m", "2h",
// "1.5h", "1d", "90") into integer minutes and formats minutes back into a
// compact human string.
package timeparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MaxMinutes caps any parsed value at 30 days of minutes.
const MaxMinutes = 24 * 60 * 30

var inputPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(m|min|mins|h|hr|hrs|hour|hours|d|day|days)?$`)

// Parse converts a time expression to minutes. A bare number means minutes.
// Returns false for zero, negative, non-finite, or unparseable input.
// Values above MaxMinutes are clamped, not rejected.
func Parse(input string) (int, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, false
	}

	m := inputPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value <= 0 {
		return 0, false
	}

	var minutes float64
	switch m[2] {
	case "", "m", "min", "mins":
		minutes = value
	case "h", "hr", "hrs", "hour", "hours":
		minutes = value * 60
	case "d", "day", "days":
		minutes = value * 60 * 24
	default:
		return 0, false
	}

	return clamp(minutes)
}

// FromNumber normalizes a raw minute count through the same rounding and
// clamping rules as Parse. Returns false for non-finite or non-positive input.
func FromNumber(v float64) (int, bool) {
	if math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
		return 0, false
	}
	return clamp(v)
}

func clamp(minutes float64) (int, bool) {
	capped := int(math.Round(minutes))
	if capped > MaxMinutes {
		capped = MaxMinutes
	}
	if capped <= 0 {
		return 0, false
	}
	return capped, true
}

// Format renders minutes as a compact human string: "45m", "2h", "1h 30m".
// Negative input renders as "0m".
func Format(totalMinutes int) string {
	if totalMinutes < 0 {
		return "0m"
	}
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm", totalMinutes)
	}
	hours := totalMinutes / 60
	mins := totalMinutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
