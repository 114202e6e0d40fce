package text_test

import (
	"strings"
	"testing"

	"docdigest/internal/utils/text"

	"github.com/stretchr/testify/assert"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "ASCII text", input: "hello", expected: 5},
		{name: "ASCII with spaces", input: "hello world", expected: 11},
		{name: "Japanese hiragana", input: "こんにちは", expected: 5},
		{name: "mixed", input: "hello世界", expected: 7},
		{name: "accented", input: "café", expected: 4},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.CountRunes(tt.input))
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "only whitespace", input: " \n\t ", expected: 0},
		{name: "single word", input: "word", expected: 1},
		{name: "mixed separators", input: "one two\nthree\tfour  five", expected: 5},
		{name: "punctuation stays attached", input: "Hello, world.", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.CountWords(tt.input))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Run("shorter than limit is unchanged", func(t *testing.T) {
		assert.Equal(t, "abc", text.TruncateRunes("abc", 5))
	})

	t.Run("exactly at limit is unchanged", func(t *testing.T) {
		in := strings.Repeat("a", 2000)
		assert.Equal(t, in, text.TruncateRunes(in, 2000))
	})

	t.Run("longer than limit gets ellipsis", func(t *testing.T) {
		in := strings.Repeat("a", 2001)
		out := text.TruncateRunes(in, 2000)
		assert.Equal(t, strings.Repeat("a", 2000)+text.Ellipsis, out)
	})

	t.Run("cuts on rune boundary", func(t *testing.T) {
		assert.Equal(t, "日本...", text.TruncateRunes("日本語", 2))
	})

	t.Run("zero limit", func(t *testing.T) {
		assert.Equal(t, text.Ellipsis, text.TruncateRunes("abc", 0))
	})
}
