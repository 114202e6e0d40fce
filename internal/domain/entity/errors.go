package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for the digest pipeline.
var (
	// ErrExtraction matches every *ExtractionError via errors.Is.
	ErrExtraction = errors.New("text extraction failed")

	// ErrUnsupportedKind indicates a SourceKind the extractor has no handler for.
	ErrUnsupportedKind = errors.New("unsupported source kind")

	// ErrEmptyText indicates extraction succeeded but produced no readable content.
	ErrEmptyText = errors.New("no readable text found in the document")
)

// ExtractionError reports that the bytes could not be read as the declared kind.
// It is fatal to the request.
type ExtractionError struct {
	Kind SourceKind
	Err  error
}

// Error returns a message naming the kind and the cause.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrExtraction) true for any ExtractionError.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

// NewExtractionError wraps err as an ExtractionError for kind.
func NewExtractionError(kind SourceKind, err error) *ExtractionError {
	return &ExtractionError{Kind: kind, Err: err}
}
