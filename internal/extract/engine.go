// Package extract turns an input document (PDF or raster image) into plain
// text. PDFs first go through the native text layer; scanned or empty PDFs
// fall back to rasterization, page preprocessing and OCR.
package extract

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adour-labs/docstruct/constants"
	"github.com/adour-labs/docstruct/internal/common"
	"github.com/adour-labs/docstruct/internal/ocr"
	"github.com/adour-labs/docstruct/internal/preprocess"
)

// nativeTextMinChars is the acceptance bar for a PDF's embedded text layer.
// Scanned PDFs usually yield nothing or a handful of artifact characters, so
// anything longer than this is treated as born-digital.
const nativeTextMinChars = 50

type Engine struct {
	ocr      *ocr.Client
	prep     *preprocess.Preprocessor
	logger   *slog.Logger
	progress common.ProgressFunc
}

func NewEngine(ocrClient *ocr.Client, prep *preprocess.Preprocessor, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{ocr: ocrClient, prep: prep, logger: logger}
}

// WithProgress attaches an advisory progress callback for long OCR runs.
func (e *Engine) WithProgress(p common.ProgressFunc) {
	e.progress = p
}

// Extract produces the text of the document at path, choosing the cheapest
// viable method for its media kind.
func (e *Engine) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	reqID := uuid.New().String()

	kind := constants.MapExtToKind(filepath.Ext(path))
	if kind == "" {
		return Result{}, common.NewAppError("UNSUPPORTED_FORMAT",
			fmt.Sprintf("unsupported extension %q", filepath.Ext(path)), common.ErrUnsupportedFormat)
	}

	e.logger.Info("extract.start", "req_id", reqID, "path", path, "kind", string(kind))
	e.progress.Report(0.0, "extracting")

	var res Result
	var err error
	switch kind {
	case constants.PDF:
		res, err = e.extractPDF(ctx, reqID, path)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, reqID, path)
	}
	if err != nil {
		e.logger.Error("extract.failed", "req_id", reqID, "path", path, "error", err)
		return Result{}, err
	}

	res.SourceKind = kind
	res.Language = e.ocr.Lang()
	res.Duration = time.Since(start)
	res.Confidence = ocr.HeuristicConfidence(res.Text)

	e.logger.Info("extract.done",
		"req_id", reqID,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"confidence", res.Confidence,
		"elapsed_ms", res.Duration.Milliseconds())
	e.progress.Report(1.0, "extracted")
	return res, nil
}

// extractPDF tries the native text layer first and falls back to OCR when the
// yield is too small to be a real text layer.
func (e *Engine) extractPDF(ctx context.Context, reqID, path string) (Result, error) {
	text, pages, err := extractNativePDF(path)
	if err == nil && len(strings.TrimSpace(text)) > nativeTextMinChars {
		return Result{Text: strings.TrimSpace(text), Pages: pages, Method: MethodPDFText}, nil
	}

	var warnings []string
	if err != nil {
		e.logger.Warn("extract.native_failed", "req_id", reqID, "error", err)
		warnings = append(warnings, fmt.Sprintf("native text layer unreadable: %v", err))
	} else {
		e.logger.Info("extract.native_empty", "req_id", reqID, "chars", len(strings.TrimSpace(text)))
		warnings = append(warnings, "no usable native text layer, fell back to OCR")
	}

	res, err := e.ocrPDF(ctx, reqID, path)
	if err != nil {
		return Result{}, common.NewAppError("EXTRACTION_FAILED", "OCR fallback failed",
			fmt.Errorf("%w: %w", common.ErrExtraction, err))
	}
	res.Warnings = append(warnings, res.Warnings...)
	return res, nil
}

// ocrPDF rasterizes every page, normalizes each raster and OCRs it. A page
// that fails OCR contributes empty text and a warning; it never aborts the
// document.
func (e *Engine) ocrPDF(ctx context.Context, reqID, path string) (Result, error) {
	tmpDir, err := os.MkdirTemp("", "docstruct-ocr-*")
	if err != nil {
		return Result{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pagePaths, err := e.ocr.Rasterize(ctx, path, tmpDir)
	if err != nil {
		return Result{}, err
	}

	var sb strings.Builder
	var warnings []string
	for i, p := range pagePaths {
		e.progress.Report(0.1+0.8*float64(i)/float64(len(pagePaths)), fmt.Sprintf("ocr page %d/%d", i+1, len(pagePaths)))

		pageText, err := e.recognizePage(ctx, p)
		if err != nil {
			e.logger.Warn("extract.page_failed", "req_id", reqID, "page", i+1, "error", err)
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i+1, err))
			pageText = ""
		}
		fmt.Fprintf(&sb, "--- Page %d ---\n%s\n", i+1, pageText)
	}

	return Result{
		Text:     CorrectOCRText(sb.String()),
		Pages:    len(pagePaths),
		Method:   MethodPDFOCR,
		Warnings: warnings,
	}, nil
}

func (e *Engine) extractImage(ctx context.Context, reqID, path string) (Result, error) {
	text, err := e.recognizePage(ctx, path)
	if err != nil {
		return Result{}, common.NewAppError("EXTRACTION_FAILED", "image OCR failed",
			fmt.Errorf("%w: %w", common.ErrExtraction, err))
	}
	return Result{Text: CorrectOCRText(text), Pages: 1, Method: MethodImageOCR}, nil
}

// recognizePage decodes a raster, runs it through the preprocessor and OCRs
// the normalized copy. Undecodable rasters (tiff, bmp) are OCRed as-is;
// tesseract handles more formats than the stdlib decoders do.
func (e *Engine) recognizePage(ctx context.Context, imagePath string) (string, error) {
	ocrPath := imagePath
	if e.prep != nil {
		if normPath, err := e.normalizePage(imagePath); err != nil {
			e.logger.Debug("extract.preprocess_skipped", "path", imagePath, "error", err)
		} else {
			ocrPath = normPath
			defer os.Remove(normPath)
		}
	}
	return e.ocr.Recognize(ctx, ocrPath)
}

// normalizePage writes a preprocessed copy of the raster to a temp file and
// returns its path. The caller removes it.
func (e *Engine) normalizePage(imagePath string) (string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", filepath.Base(imagePath), err)
	}

	norm := e.prep.Normalize(img)

	out, err := os.CreateTemp("", "docstruct-norm-*.png")
	if err != nil {
		return "", err
	}
	defer out.Close()
	if err := png.Encode(out, norm); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}
