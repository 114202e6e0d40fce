//go:build ocr

package extractor

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs OCR through gosseract.
// A gosseract client is not safe for concurrent use, so one is created per call.
type Tesseract struct {
	language string
}

// NewTesseract returns a Tesseract engine for the given language ("eng" when empty).
func NewTesseract(language string) (*Tesseract, error) {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{language: language}, nil
}

// Recognize performs OCR on encoded image data.
func (t *Tesseract) Recognize(image []byte) (string, error) {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
