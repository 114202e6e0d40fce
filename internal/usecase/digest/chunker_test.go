package digest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestChunk_Reconstructs(t *testing.T) {
	inputs := []string{
		"",
		"short",
		strings.Repeat("a", 1000),
		strings.Repeat("a", 1001),
		strings.Repeat("lorem ipsum ", 500),
		strings.Repeat("日本語のテキスト。", 300),
	}

	for _, in := range inputs {
		chunks := Chunk(in, DefaultChunkSize)
		assert.Equal(t, in, strings.Join(chunks, ""))
		for i, c := range chunks {
			if i < len(chunks)-1 {
				assert.Equal(t, DefaultChunkSize, utf8.RuneCountInString(c), "chunk %d", i)
			} else {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), DefaultChunkSize)
				assert.NotEmpty(t, c)
			}
		}
	}
}

func TestChunk_Sizes(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{name: "empty", text: "", size: 3, want: nil},
		{name: "exact multiple", text: "abcdef", size: 3, want: []string{"abc", "def"}},
		{name: "short tail", text: "abcdefg", size: 3, want: []string{"abc", "def", "g"}},
		{name: "multibyte", text: "äöüß", size: 3, want: []string{"äöü", "ß"}},
		{name: "size one", text: "ab", size: 1, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunk(tt.text, tt.size))
		})
	}
}

func TestChunk_NonPositiveSizeUsesDefault(t *testing.T) {
	chunks := Chunk(strings.Repeat("x", 2500), 0)
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], DefaultChunkSize)
}
