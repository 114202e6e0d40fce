package digest

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Suggestion messages produced by Assess.
const (
	SuggestionTooShort = "The text is too short. Add more details for a meaningful summary."
	SuggestionClear    = "The text looks clear and concise. ✅"
)

const (
	// longSentenceWords is the word count a sentence must exceed to be flagged.
	longSentenceWords = 25
	// repeatedWordCount is the occurrence count a word must exceed to be flagged.
	repeatedWordCount = 5
	// repeatedWordMinLength is the length a word must exceed to be considered.
	repeatedWordMinLength = 3
	// maxRepeatedWords caps the words listed in the repetition suggestion.
	maxRepeatedWords = 5
)

// Assess returns writing suggestions for text in a fixed order: length,
// long sentences, repeated words. When nothing applies it returns a single
// affirmative message, so the result is never empty.
func Assess(text string) []string {
	var suggestions []string

	if utf8.RuneCountInString(strings.TrimSpace(text)) < minSummarizableLength {
		suggestions = append(suggestions, SuggestionTooShort)
	}

	if n := countLongSentences(text); n > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("%d sentence(s) are very long. Consider splitting them.", n))
	}

	if words := repeatedWords(text); len(words) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("Some words are repeated too often: %s.", strings.Join(words, ", ")))
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, SuggestionClear)
	}
	return suggestions
}

func countLongSentences(text string) int {
	n := 0
	for _, s := range strings.Split(text, ".") {
		if len(strings.Fields(s)) > longSentenceWords {
			n++
		}
	}
	return n
}

// repeatedWords lists overused words in order of first occurrence.
func repeatedWords(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	counts := make(map[string]int, len(words))
	var order []string
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	var repeated []string
	for _, w := range order {
		if counts[w] > repeatedWordCount && utf8.RuneCountInString(w) > repeatedWordMinLength {
			repeated = append(repeated, w)
			if len(repeated) == maxRepeatedWords {
				break
			}
		}
	}
	return repeated
}
