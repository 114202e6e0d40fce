//go:build !ocr

package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTesseractStub(t *testing.T) {
	engine, err := NewTesseract("eng")
	assert.Nil(t, engine)
	assert.True(t, errors.Is(err, ErrOCRNotEnabled))

	var stub *Tesseract
	_, err = stub.Recognize([]byte("png"))
	assert.True(t, errors.Is(err, ErrOCRNotEnabled))
}
