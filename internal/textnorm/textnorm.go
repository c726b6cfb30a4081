// Package textnorm strips document noise before scoring: bullet glyphs,
// decorative separators, and redundant whitespace.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	// Bullet and separator glyphs that PDF/DOCX extraction leaves behind.
	bulletPattern     = regexp.MustCompile(`[•*|➢▪‣◦·-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize removes bullet characters, collapses whitespace runs to single
// spaces, and trims. Never fails; empty input yields empty output.
func Normalize(s string) string {
	s = bulletPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
