package entity

// Stats holds the size figures derived once per request.
type Stats struct {
	TotalWords        int     `json:"total_words"`
	TotalChars        int     `json:"total_chars"`
	SummaryWords      int     `json:"summary_words"`
	SummaryPercentage float64 `json:"summary_percentage"`
}

// Result is everything the presentation layer needs to render one digest.
// ExtractedText is the display copy of the original and may be truncated;
// every other field was computed from the full text.
type Result struct {
	ExtractedText       string     `json:"extracted_text"`
	OriginalHighlighted string     `json:"original_highlighted"`
	Summary             string     `json:"summary"`
	HighlightedSummary  string     `json:"highlighted_summary"`
	Suggestions         []string   `json:"suggestions"`
	Stats               Stats      `json:"stats"`
	Length              LengthTier `json:"length"`
	Kind                string     `json:"source_kind,omitempty"`
}
