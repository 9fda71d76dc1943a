// Package export flattens a batch of pipeline results into an XLSX summary
// sheet, one row per document.
package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/adour-labs/docstruct/internal/llm"
	"github.com/adour-labs/docstruct/internal/pipeline"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// SummaryXLSX returns an XLSX workbook (as bytes) with one row per processed
// document: source file, resolved type, extraction method, and the headline
// fields dug out of each record.
func (s *Service) SummaryXLSX(results []pipeline.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Documents"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Remove the default sheet excelize creates.
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"File",
		"Type",
		"Method",
		"Pages",
		"Name/Title",
		"Email",
		"Phone",
		"Total",
		"Needs Review",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range results {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, filepath.Base(r.Path))
		write(2, string(r.Type))
		write(3, r.Method)
		write(4, r.Pages)

		if llm.IsErrorRecord(r.Record) {
			write(5, "analysis failed")
			write(9, "yes")
			continue
		}

		write(5, headline(r.Record))
		write(6, nested(r.Record, "profile", "email", "issuer", "email"))
		write(7, nested(r.Record, "profile", "phone", "issuer", "phone"))
		write(8, nested(r.Record, "totals", "total"))
		if r.NeedsReview {
			write(9, "yes")
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	_ = f.SetColWidth(sheet, "E", "E", 28)
	_ = f.SetColWidth(sheet, "F", "H", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// headline picks the most recognizable label a record offers: the person's
// name for a CV, the issuer for an invoice, the document title otherwise.
func headline(rec llm.Record) string {
	if v := nested(rec, "profile", "name"); v != "" {
		return v
	}
	if v := nested(rec, "issuer", "name"); v != "" {
		return v
	}
	if v, ok := rec["title"].(string); ok {
		return v
	}
	return ""
}

// nested looks up parent/field pairs in order and returns the first non-empty
// string value.
func nested(rec llm.Record, pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		parent, ok := rec[pairs[i]].(map[string]any)
		if !ok {
			continue
		}
		if v, ok := parent[pairs[i+1]].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
