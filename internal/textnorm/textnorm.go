// Package textnorm normalizes text fields into comparable units.
// Matching is byte-oriented and ASCII-case-insensitive; no stemming, no
// locale-aware folding.
package textnorm

import "strings"

// Fold returns the case-folded form of s.
func Fold(s string) string {
	return strings.ToLower(s)
}

// Words returns the whitespace-delimited tokens of the folded form of s.
func Words(s string) []string {
	return strings.Fields(Fold(s))
}
