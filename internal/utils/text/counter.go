// Package text provides utilities for text processing and analysis.
// Every length in this package is measured in Unicode characters (runes),
// never in bytes, so multi-byte input counts the way a reader sees it.
package text

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended by TruncateRunes when it cuts text.
const Ellipsis = "..."

// CountRunes counts the number of Unicode characters (runes) in the given text.
//
// Examples:
//
//	CountRunes("hello")     // returns 5
//	CountRunes("こんにちは") // returns 5
//	CountRunes("")          // returns 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// TruncateRunes returns the first limit runes of text followed by Ellipsis
// when text is longer than limit; otherwise text is returned unchanged.
func TruncateRunes(text string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i] + Ellipsis
		}
		n++
	}
	return text
}
