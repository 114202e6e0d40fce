package digest

import "docdigest/internal/domain/entity"

// TierSettings is what a length tier means to the summarizer.
type TierSettings struct {
	Bounds            entity.LengthBounds
	FallbackSentences int
}

// Tiers maps each length tier to its settings.
type Tiers map[entity.LengthTier]TierSettings

// DefaultTiers returns the built-in settings for short, medium and long.
func DefaultTiers() Tiers {
	tiers := make(Tiers, 3)
	for _, t := range []entity.LengthTier{entity.LengthShort, entity.LengthMedium, entity.LengthLong} {
		tiers[t] = TierSettings{Bounds: t.Bounds(), FallbackSentences: t.FallbackSentences()}
	}
	return tiers
}

// For returns the settings of tier. Unknown tiers use the medium settings.
func (t Tiers) For(tier entity.LengthTier) TierSettings {
	if s, ok := t[tier]; ok {
		return s
	}
	if s, ok := t[entity.DefaultLengthTier]; ok {
		return s
	}
	return TierSettings{Bounds: tier.Bounds(), FallbackSentences: tier.FallbackSentences()}
}
