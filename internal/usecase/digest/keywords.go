package digest

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Ranker returns the n highest scoring key phrases of a text, best first.
type Ranker interface {
	Rank(text string, n int) ([]string, error)
}

// tokenPattern splits text into runs of word characters and runs of punctuation.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\p{L}\p{N}_\s]+`)

// RAKE ranks candidate phrases by Rapid Automatic Keyword Extraction:
// phrases are maximal runs of non-stop words, each word scores
// degree/frequency over those phrases, and a phrase scores the sum of its words.
// RAKE is safe for concurrent use.
type RAKE struct {
	stopwords map[string]struct{}
}

// NewRAKE creates a ranker using the English stop word list plus extra.
func NewRAKE(extra ...string) *RAKE {
	stop := make(map[string]struct{}, len(englishStopwords)+len(extra))
	for _, w := range englishStopwords {
		stop[w] = struct{}{}
	}
	for _, w := range extra {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			stop[w] = struct{}{}
		}
	}
	return &RAKE{stopwords: stop}
}

type scoredPhrase struct {
	phrase string
	score  float64
}

// Rank implements Ranker. Phrases are lowercase. A phrase occurring several
// times in text is ranked once per occurrence, so it may fill several slots.
func (r *RAKE) Rank(text string, n int) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}
	if n <= 0 {
		return []string{}, nil
	}

	phrases := r.candidates(text)

	degree := make(map[string]int)
	frequency := make(map[string]int)
	for _, p := range phrases {
		for _, w := range p {
			degree[w] += len(p)
			frequency[w]++
		}
	}

	scored := make([]scoredPhrase, 0, len(phrases))
	for _, p := range phrases {
		var score float64
		for _, w := range p {
			score += float64(degree[w]) / float64(frequency[w])
		}
		scored = append(scored, scoredPhrase{phrase: strings.Join(p, " "), score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].phrase > scored[j].phrase
	})

	keywords := make([]string, 0, min(n, len(scored)))
	for _, sp := range scored[:min(n, len(scored))] {
		keywords = append(keywords, sp.phrase)
	}
	return keywords, nil
}

// candidates splits text into phrases at stop words and punctuation.
func (r *RAKE) candidates(text string) [][]string {
	var (
		phrases [][]string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, current)
			current = nil
		}
	}

	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := r.stopwords[tok]; stop || !isWordToken(tok) {
			flush()
			continue
		}
		current = append(current, tok)
	}
	flush()
	return phrases
}

func isWordToken(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return isWordRune(r)
}
