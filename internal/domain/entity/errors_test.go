package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionError_Error(t *testing.T) {
	err := NewExtractionError(SourceKindPDF, errors.New("bad xref"))
	assert.Equal(t, "extract pdf: bad xref", err.Error())
}

func TestExtractionError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("corrupt header")
	err := fmt.Errorf("process: %w", NewExtractionError(SourceKindImage, cause))

	assert.True(t, errors.Is(err, ErrExtraction))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrEmptyText))

	var extErr *ExtractionError
	if assert.True(t, errors.As(err, &extErr)) {
		assert.Equal(t, SourceKindImage, extErr.Kind)
	}
}

func TestExtractionError_WrapsUnsupportedKind(t *testing.T) {
	err := NewExtractionError(SourceKindUnknown, ErrUnsupportedKind)
	assert.True(t, errors.Is(err, ErrUnsupportedKind))
	assert.True(t, errors.Is(err, ErrExtraction))
}
