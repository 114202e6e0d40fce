package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     string
	}{
		{
			name:     "case insensitive keeps original case",
			text:     "Cat, cat and CAT.",
			keywords: []string{"cat"},
			want:     "<mark>Cat</mark>, <mark>cat</mark> and <mark>CAT</mark>.",
		},
		{
			name:     "whole words only",
			text:     "The cat sat in a category of cats.",
			keywords: []string{"cat"},
			want:     "The <mark>cat</mark> sat in a category of cats.",
		},
		{
			name:     "metacharacters are literal",
			text:     "Version 5.0 is not 5x0.",
			keywords: []string{"5.0"},
			want:     "Version <mark>5.0</mark> is not 5x0.",
		},
		{
			name:     "phrase",
			text:     "Natural numbers and natural  numbers.",
			keywords: []string{"natural numbers"},
			want:     "<mark>Natural numbers</mark> and natural  numbers.",
		},
		{
			name:     "unicode boundaries",
			text:     "Un café, deux cafés.",
			keywords: []string{"café"},
			want:     "Un <mark>café</mark>, deux cafés.",
		},
		{
			name:     "adjacent matches",
			text:     "go go go",
			keywords: []string{"go"},
			want:     "<mark>go</mark> <mark>go</mark> <mark>go</mark>",
		},
		{
			name:     "rejected match does not hide a later one",
			text:     "aaa aa",
			keywords: []string{"aa"},
			want:     "aaa <mark>aa</mark>",
		},
		{
			name:     "empty keywords are skipped",
			text:     "nothing changes",
			keywords: []string{"", "  "},
			want:     "nothing changes",
		},
		{
			name:     "no keywords is identity",
			text:     "nothing changes",
			keywords: nil,
			want:     "nothing changes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.text, tt.keywords))
		})
	}
}

func TestHighlight_OrderDependentNesting(t *testing.T) {
	// Each keyword is applied to the output of the previous pass.
	assert.Equal(t,
		"<mark>machine <mark>learning</mark></mark> helps",
		Highlight("machine learning helps", []string{"machine learning", "learning"}))

	assert.Equal(t,
		"machine <mark>learning</mark> helps",
		Highlight("machine learning helps", []string{"learning", "machine learning"}),
		"an earlier highlight splits the longer phrase")
}

func TestHighlight_NotIdempotent(t *testing.T) {
	once := Highlight("a cat", []string{"cat"})
	twice := Highlight(once, []string{"cat"})
	assert.Equal(t, "a <mark><mark>cat</mark></mark>", twice)
}
