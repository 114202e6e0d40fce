// Package entity defines the core domain entities of the document digest pipeline.
// It contains the source document, length tiers, the digest result and the
// domain-specific errors shared by every stage.
package entity

import (
	"path/filepath"
	"strings"
)

// SourceKind identifies how the bytes of a Document must be read.
// It is a closed set: adding a kind means adding a constant here and a
// branch in the extractor's switch.
type SourceKind int

const (
	// SourceKindUnknown is the zero value and is never extracted.
	SourceKindUnknown SourceKind = iota
	// SourceKindPDF is a PDF file with an embedded text layer.
	SourceKindPDF
	// SourceKindImage is a raster image that goes through OCR.
	SourceKindImage
)

// String returns the lowercase name used in logs, metrics and JSON.
func (k SourceKind) String() string {
	switch k {
	case SourceKindPDF:
		return "pdf"
	case SourceKindImage:
		return "image"
	default:
		return "unknown"
	}
}

// imageExtensions lists the raster formats accepted for OCR.
var imageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"bmp":  {},
	"webp": {},
}

// SourceKindFromFilename maps a file name to its SourceKind by extension.
// The second return value is false when the extension is not supported.
func SourceKindFromFilename(name string) (SourceKind, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "pdf" {
		return SourceKindPDF, true
	}
	if _, ok := imageExtensions[ext]; ok {
		return SourceKindImage, true
	}
	return SourceKindUnknown, false
}

// Document is an uploaded file held in memory for the lifetime of one request.
type Document struct {
	Data []byte
	Kind SourceKind
	Name string
}
