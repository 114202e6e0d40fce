package digest

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlight wraps every whole-word, case-insensitive occurrence of each
// keyword in <mark> tags, keeping the matched text's case. Keywords are
// matched literally and applied in order, each pass working on the output
// of the previous one, so overlapping keywords can nest markup.
func Highlight(text string, keywords []string) string {
	out := text
	for _, kw := range keywords {
		out = highlightOne(out, kw)
	}
	return out
}

func highlightOne(text, keyword string) string {
	if strings.TrimSpace(keyword) == "" {
		return text
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))

	var b strings.Builder
	last, pos := 0, 0
	for pos < len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if wordBoundary(text, start) && wordBoundary(text, end) {
			b.WriteString(text[last:start])
			b.WriteString(markOpen)
			b.WriteString(text[start:end])
			b.WriteString(markClose)
			last, pos = end, end
			continue
		}
		// Retry one character later so a rejected match cannot hide an overlapping one.
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// wordBoundary reports whether a word character and a non-word character meet
// at byte offset i. Both ends of the text count as non-word.
func wordBoundary(text string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = isWordRune(r)
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
