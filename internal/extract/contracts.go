package extract

import (
	"context"
	"time"

	"github.com/adour-labs/docstruct/constants"
)

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (Result, error)
}

// Result is the full text yield of the extraction engine for one document,
// page-segmented when OCR was involved.
type Result struct {
	Text       string
	Pages      int
	SourceKind constants.MediaKind
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// UsedOCR reports whether the text came from the OCR fallback rather than a
// native text layer.
func (r Result) UsedOCR() bool {
	return r.Method == MethodPDFOCR || r.Method == MethodImageOCR
}

const (
	MethodPDFText  = "pdf-text"
	MethodPDFOCR   = "pdf-ocr"
	MethodImageOCR = "image-ocr"
)
