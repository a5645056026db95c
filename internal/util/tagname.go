// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

// Matches runs of whitespace (for collapsing to a single space).
var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeTagName converts user input to a canonical tag display name.
// Tags keep their original casing for display; uniqueness is enforced
// case-insensitively by the store.
//
// Normalization rules:
//  1. Trim leading/trailing whitespace
//  2. Collapse internal whitespace runs to a single space
//
// Examples:
//
//	"  Climate  Science " → "Climate Science"
//	"Neuroscience"        → "Neuroscience"
func NormalizeTagName(input string) string {
	s := strings.TrimSpace(input)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return s
}
