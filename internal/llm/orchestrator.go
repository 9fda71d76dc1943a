package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adour-labs/docstruct/constants"
	"github.com/adour-labs/docstruct/internal/common"
	"github.com/adour-labs/docstruct/internal/schema"
)

// Generator is the inference backend the orchestrator depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

type Orchestrator struct {
	reg      *schema.Registry
	gen      Generator
	maxChars int
	logger   *slog.Logger
}

func NewOrchestrator(reg *schema.Registry, gen Generator, maxChars int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxChars <= 0 {
		maxChars = 25000
	}
	return &Orchestrator{reg: reg, gen: gen, maxChars: maxChars, logger: logger}
}

// Analyze sends text to the inference backend with the template for t and
// recovers the structured record. A transport or parse failure returns a
// non-nil error wrapping common.ErrAnalysis; the caller decides whether to
// degrade into an ErrorRecord.
func (o *Orchestrator) Analyze(ctx context.Context, text string, t constants.DocumentType) (Record, error) {
	rid := uuid.New().String()
	start := time.Now()

	template := o.reg.SchemaFor(t)
	prompt := BuildPrompt(o.reg.InstructionsFor(t), template, text, o.maxChars)

	o.logger.Info("llm.analyze.start",
		"req_id", rid,
		"model", o.gen.Model(),
		"doc_type", string(t),
		"text_len", len(text),
		"prompt_len", len(prompt),
	)
	if len(text) > o.maxChars {
		o.logger.Warn("llm.analyze.truncated", "req_id", rid, "text_len", len(text), "max_chars", o.maxChars)
	}

	out, err := o.gen.Generate(ctx, prompt)
	if err != nil {
		o.logger.Error("llm.analyze.generate_error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, common.NewAppError("ANALYSIS_FAILED", "inference call failed",
			fmt.Errorf("%w: %w", common.ErrAnalysis, err))
	}

	record, err := RecoverJSON(out)
	if err != nil {
		o.logger.Error("llm.analyze.recover_error",
			"req_id", rid, "error", err, "raw_len", len(out),
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, common.NewAppError("ANALYSIS_FAILED", "unparseable model output",
			fmt.Errorf("%w: %w", common.ErrAnalysis, err))
	}

	o.logger.Info("llm.analyze.done",
		"req_id", rid,
		"doc_type", string(t),
		"keys", len(record),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return record, nil
}
