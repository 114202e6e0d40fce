package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLengthTier(t *testing.T) {
	tests := []struct {
		input string
		tier  LengthTier
		ok    bool
	}{
		{"short", LengthShort, true},
		{"medium", LengthMedium, true},
		{"long", LengthLong, true},
		{" LONG ", LengthLong, true},
		{"", LengthMedium, false},
		{"huge", LengthMedium, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tier, ok := ParseLengthTier(tt.input)
			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestLengthTier_Bounds(t *testing.T) {
	assert.Equal(t, LengthBounds{MinTokens: 20, MaxTokens: 60}, LengthShort.Bounds())
	assert.Equal(t, LengthBounds{MinTokens: 40, MaxTokens: 120}, LengthMedium.Bounds())
	assert.Equal(t, LengthBounds{MinTokens: 80, MaxTokens: 200}, LengthLong.Bounds())
	assert.Equal(t, LengthMedium.Bounds(), LengthTier("other").Bounds())
}

func TestLengthTier_FallbackSentencesMonotonic(t *testing.T) {
	short := LengthShort.FallbackSentences()
	medium := LengthMedium.FallbackSentences()
	long := LengthLong.FallbackSentences()

	assert.Equal(t, 2, short)
	assert.Equal(t, 4, medium)
	assert.Equal(t, 6, long)
	assert.LessOrEqual(t, short, medium)
	assert.LessOrEqual(t, medium, long)
}
