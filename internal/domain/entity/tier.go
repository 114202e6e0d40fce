package entity

import "strings"

// LengthTier is the user-selected verbosity of a summary.
type LengthTier string

const (
	LengthShort  LengthTier = "short"
	LengthMedium LengthTier = "medium"
	LengthLong   LengthTier = "long"
)

// DefaultLengthTier is used when the caller asks for nothing or for an unknown tier.
const DefaultLengthTier = LengthMedium

// LengthBounds is the (min, max) token budget handed to the primary model.
type LengthBounds struct {
	MinTokens int
	MaxTokens int
}

// ParseLengthTier parses a tier name case-insensitively.
// It returns false for anything other than short, medium or long.
func ParseLengthTier(s string) (LengthTier, bool) {
	switch LengthTier(strings.ToLower(strings.TrimSpace(s))) {
	case LengthShort:
		return LengthShort, true
	case LengthMedium:
		return LengthMedium, true
	case LengthLong:
		return LengthLong, true
	default:
		return DefaultLengthTier, false
	}
}

// Bounds returns the token budget for the tier.
func (t LengthTier) Bounds() LengthBounds {
	switch t {
	case LengthShort:
		return LengthBounds{MinTokens: 20, MaxTokens: 60}
	case LengthLong:
		return LengthBounds{MinTokens: 80, MaxTokens: 200}
	default:
		return LengthBounds{MinTokens: 40, MaxTokens: 120}
	}
}

// FallbackSentences returns how many sentences the extractive fallback keeps.
func (t LengthTier) FallbackSentences() int {
	switch t {
	case LengthShort:
		return 2
	case LengthLong:
		return 6
	default:
		return 4
	}
}
