package digest

import (
	"strings"
	"unicode/utf8"

	"docdigest/internal/domain/entity"
)

// UnableToSummarize is returned by the fallback when no sentence is long enough to keep.
const UnableToSummarize = "Unable to generate summary."

// minSentenceLength is the length a fragment must exceed to count as a sentence.
const minSentenceLength = 20

// Fallback builds an extractive summary of text: the first sentences of the
// tier's fallback count, skipping fragments of 20 characters or fewer.
func Fallback(text string, tier entity.LengthTier) string {
	return extractive(text, tier.FallbackSentences())
}

func extractive(text string, n int) string {
	var sentences []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minSentenceLength {
			sentences = append(sentences, s)
		}
	}

	n = min(n, len(sentences))
	if n <= 0 {
		return UnableToSummarize
	}
	return strings.Join(sentences[:n], ". ") + "."
}
