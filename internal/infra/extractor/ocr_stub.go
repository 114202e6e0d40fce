//go:build !ocr

package extractor

import "errors"

// ErrOCRNotEnabled is returned when OCR support was not compiled in.
// Rebuild with -tags ocr (requires the Tesseract headers and libraries).
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Tesseract is the stub engine used without the ocr build tag.
type Tesseract struct{}

// NewTesseract returns ErrOCRNotEnabled.
func NewTesseract(language string) (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// Recognize returns ErrOCRNotEnabled.
func (t *Tesseract) Recognize(image []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
