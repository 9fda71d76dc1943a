// Package pipeline sequences extraction, classification, fact extraction,
// analysis and merge for one document, and owns the end-to-end fallback
// policy: a failed analysis still yields a usable artifact.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adour-labs/docstruct/constants"
	"github.com/adour-labs/docstruct/internal/common"
	"github.com/adour-labs/docstruct/internal/extract"
	"github.com/adour-labs/docstruct/internal/facts"
	"github.com/adour-labs/docstruct/internal/llm"
	"github.com/adour-labs/docstruct/internal/merge"
	"github.com/adour-labs/docstruct/internal/schema"
)

// Analyzer is the structuring stage; satisfied by *llm.Orchestrator.
type Analyzer interface {
	Analyze(ctx context.Context, text string, t constants.DocumentType) (llm.Record, error)
}

// Classifier resolves a document type from raw text.
type Classifier interface {
	Classify(text string) constants.DocumentType
}

// Result is the terminal artifact for one document. Ownership passes to the
// caller.
type Result struct {
	Path        string
	Record      llm.Record
	Type        constants.DocumentType
	RawText     string
	Method      string
	Pages       int
	UsedOCR     bool
	Warnings    []string
	NeedsReview bool
	Elapsed     time.Duration
}

// Fraction range the extract phase occupies within a full run.
const (
	extractStart = 0.05
	extractEnd   = 0.45
)

type Pipeline struct {
	extractor  extract.TextExtractor
	classifier Classifier
	reg        *schema.Registry
	analyzer   Analyzer
	merger     *merge.Merger
	logger     *slog.Logger
	progress   common.ProgressFunc
}

func New(extractor extract.TextExtractor, classifier Classifier, reg *schema.Registry, analyzer Analyzer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor:  extractor,
		classifier: classifier,
		reg:        reg,
		analyzer:   analyzer,
		merger:     merge.New(reg, logger),
		logger:     logger,
	}
}

// WithProgress attaches an advisory progress callback. Extractors that report
// their own progress, such as per-page OCR, get a forwarder that rescales
// their fractions into the extract phase's slice of the run.
func (p *Pipeline) WithProgress(fn common.ProgressFunc) *Pipeline {
	p.progress = fn
	if e, ok := p.extractor.(interface{ WithProgress(common.ProgressFunc) }); ok && fn != nil {
		e.WithProgress(func(frac float64, phase string) {
			fn.Report(extractStart+frac*(extractEnd-extractStart), phase)
		})
	}
	return p
}

// Process runs the full pipeline on one document. requested wins over the
// classifier when it names a concrete type; TypeAuto (or empty) consults the
// classifier. Only an unsupported format or a completely failed extraction
// returns an error; analysis failures degrade into a sentinel record that
// still carries the raw text.
func (p *Pipeline) Process(ctx context.Context, path string, requested constants.DocumentType) (Result, error) {
	runID := uuid.New().String()
	start := time.Now()
	p.logger.Info("pipeline.start", "run_id", runID, "path", path, "requested_type", string(requested))

	p.progress.Report(extractStart, "extracting")
	ext, err := p.extractor.Extract(ctx, path)
	if err != nil {
		p.logger.Error("pipeline.extract_failed", "run_id", runID, "path", path, "error", err)
		return Result{}, err
	}

	p.progress.Report(extractEnd, "classifying")
	docType, explicit := constants.Canonicalize(string(requested))
	if !explicit || docType == constants.TypeAuto {
		docType = p.classifier.Classify(ext.Text)
	}

	atomicFacts := facts.Extract(ext.Text)

	res := Result{
		Path:     path,
		Type:     docType,
		RawText:  ext.Text,
		Method:   ext.Method,
		Pages:    ext.Pages,
		UsedOCR:  ext.UsedOCR(),
		Warnings: ext.Warnings,
	}

	p.progress.Report(0.55, "analyzing")
	record, err := p.analyzer.Analyze(ctx, ext.Text, docType)
	if err != nil {
		// Terminal fallback: keep all extraction work in the artifact.
		p.logger.Warn("pipeline.analysis_degraded", "run_id", runID, "error", err)
		record = llm.ErrorRecord(err.Error())
		record["raw_text"] = ext.Text
		res.NeedsReview = true
	} else if cErr := schema.Conforms(p.reg.SchemaFor(docType), record); cErr != nil {
		// Advisory only; semantic mismatch never rejects the record.
		p.logger.Warn("pipeline.schema_mismatch", "run_id", runID, "doc_type", string(docType), "error", cErr)
		res.NeedsReview = true
	}

	p.progress.Report(0.90, "merging")
	res.Record = p.merger.Merge(record, atomicFacts, docType)
	res.Elapsed = time.Since(start)

	p.logger.Info("pipeline.done",
		"run_id", runID,
		"path", path,
		"doc_type", string(docType),
		"method", res.Method,
		"pages", res.Pages,
		"needs_review", res.NeedsReview,
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)
	p.progress.Report(1.0, "done")
	return res, nil
}
