// Package digest turns extracted document text into a summary with keyword
// highlights, writing suggestions and size statistics. Extraction failures
// are fatal to a run; every later stage degrades in place.
package digest

import "errors"

var (
	// ErrInvalidText indicates text the keyword ranker cannot tokenize.
	ErrInvalidText = errors.New("text is not valid UTF-8")

	// errEmptyModelOutput makes a blank primary summary take the fallback path.
	errEmptyModelOutput = errors.New("model returned an empty summary")

	errNoModel = errors.New("no summarization model configured")
)
