package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// MuPDF reads PDF text layers with go-fitz.
// Image-only pages yield no text; there is no OCR fallback for them.
type MuPDF struct{}

// NewMuPDF returns a MuPDF reader.
func NewMuPDF() *MuPDF {
	return &MuPDF{}
}

// ReadText concatenates the text of every page in page order.
func (m *MuPDF) ReadText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf")
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return "", errors.New("pdf has no pages")
	}

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i+1, err)
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
