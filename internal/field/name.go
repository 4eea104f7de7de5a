package field

import (
	"strings"
	"unicode/utf16"
)

const (
	// MaxNameLength is the longest name a chartplotter mark or group can carry,
	// counted in UTF-16 code units.
	MaxNameLength = 16

	// DefaultName replaces names that are empty or whitespace only.
	DefaultName = "WP"
)

// SanitizeName clamps a raw name to what every export format accepts.
//
// Empty or all-whitespace input becomes DefaultName. The result is trimmed,
// truncated to MaxNameLength UTF-16 code units, and every comma is replaced with a space,
// in that order. Truncation happens after trimming, so whitespace that ends up
// at the cut point is kept. A character outside the Basic Multilingual Plane
// counts as two units and is dropped whole if only one unit is left.
func SanitizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return DefaultName
	}

	name = truncateUTF16(name, MaxNameLength)

	return strings.ReplaceAll(name, ",", " ")
}

// truncateUTF16 returns the longest prefix of s that fits in limit UTF-16 units.
func truncateUTF16(s string, limit int) string {
	units := 0
	for i, r := range s {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > limit {
			return s[:i]
		}
		units += n
	}
	return s
}
