package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/adour-labs/docstruct/constants"
	"github.com/adour-labs/docstruct/internal/classify"
	"github.com/adour-labs/docstruct/internal/common"
	"github.com/adour-labs/docstruct/internal/export"
	"github.com/adour-labs/docstruct/internal/extract"
	"github.com/adour-labs/docstruct/internal/ingest"
	"github.com/adour-labs/docstruct/internal/llm"
	"github.com/adour-labs/docstruct/internal/llm/ollama"
	"github.com/adour-labs/docstruct/internal/ocr"
	"github.com/adour-labs/docstruct/internal/pipeline"
	"github.com/adour-labs/docstruct/internal/preprocess"
	"github.com/adour-labs/docstruct/internal/schema"
)

func main() {
	var (
		docType  = flag.String("type", "auto", "document type: auto or one of "+strings.Join(constants.AsStringSlice(), ", ")+" (French synonyms accepted)")
		outDir   = flag.String("out", "", "output directory (default $OUTPUT_DIR or ./output)")
		model    = flag.String("model", "", "inference model override (default $OLLAMA_MODEL)")
		watchDir = flag.String("watch", "", "watch a directory and process documents dropped into it")
		xlsxPath = flag.String("xlsx", "", "also write a batch XLSX summary at this path")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *model != "" {
		cfg.LLM.Model = *model
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *watchDir == "" && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: docstruct [flags] <file>... | docstruct -watch <dir>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		logger.Error("create output dir", "dir", cfg.Output.Dir, "error", err)
		os.Exit(1)
	}

	p := buildPipeline(cfg, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	requested := constants.DocumentType(*docType)
	var results []pipeline.Result

	process := func(path string) {
		res, err := p.Process(ctx, path, requested)
		if err != nil {
			logger.Error("processing failed", "path", path, "error", err)
			return
		}
		if err := writeArtifacts(cfg.Output, res, logger); err != nil {
			logger.Error("write artifacts", "path", path, "error", err)
			return
		}
		results = append(results, res)
	}

	for _, path := range flag.Args() {
		process(path)
	}

	if *watchDir != "" {
		evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{*watchDir},
			InitialScan: true,
			Debounce:    500 * time.Millisecond,
		}, logger)
		if err != nil {
			logger.Error("start watcher", "dir", *watchDir, "error", err)
			os.Exit(1)
		}
		logger.Info("watching", "dir", *watchDir)
		for evCh != nil || errCh != nil {
			select {
			case path, ok := <-evCh:
				if !ok {
					evCh = nil
					continue
				}
				process(path)
			case werr, ok := <-errCh:
				if !ok {
					errCh = nil
					continue
				}
				logger.Warn("watcher error", "error", werr)
			case <-ctx.Done():
				evCh, errCh = nil, nil
			}
		}
	}

	if *xlsxPath != "" && len(results) > 0 {
		data, err := export.NewService(logger).SummaryXLSX(results)
		if err != nil {
			logger.Error("build xlsx summary", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxPath, data, 0o644); err != nil {
			logger.Error("write xlsx summary", "path", *xlsxPath, "error", err)
			os.Exit(1)
		}
		logger.Info("xlsx summary written", "path", *xlsxPath, "documents", len(results))
	}
}

func buildPipeline(cfg *common.Config, logger *slog.Logger) *pipeline.Pipeline {
	ocrClient := ocr.NewClient(ocr.Config{
		Pdftoppm:    cfg.Extract.Pdftoppm,
		Tesseract:   cfg.Extract.Tesseract,
		Lang:        cfg.Extract.TesseractLang,
		TessdataDir: cfg.Extract.TessdataDir,
		DPI:         cfg.Extract.DPI,
		PSM:         cfg.Extract.PSM,
		MaxPages:    cfg.Extract.MaxPages,
	}, logger)

	engine := extract.NewEngine(ocrClient, preprocess.New(preprocess.Config{}, logger), logger)

	reg := schema.NewRegistry()
	gen := ollama.NewClient(ollama.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		NumCtx:      cfg.LLM.ContextTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	orch := llm.NewOrchestrator(reg, gen, cfg.LLM.MaxInputChars, logger)

	return pipeline.New(engine, classify.New(classify.DefaultConfig(), logger), reg, orch, logger).
		WithProgress(func(frac float64, phase string) {
			logger.Debug("pipeline.progress", "fraction", fmt.Sprintf("%.2f", frac), "phase", phase)
		})
}

// writeArtifacts persists the JSON record and, when OCR was involved, the raw
// text next to it.
func writeArtifacts(out common.OutputConfig, res pipeline.Result, logger *slog.Logger) error {
	stem := strings.TrimSuffix(filepath.Base(res.Path), filepath.Ext(res.Path))

	data, err := json.MarshalIndent(res.Record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	jsonPath := filepath.Join(out.Dir, stem+".json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return err
	}

	if out.KeepRawText && res.UsedOCR {
		txtPath := filepath.Join(out.Dir, stem+"_extracted.txt")
		if err := os.WriteFile(txtPath, []byte(res.RawText), 0o644); err != nil {
			return err
		}
	}

	logger.Info("document processed",
		"path", res.Path,
		"type", string(res.Type),
		"method", res.Method,
		"pages", res.Pages,
		"needs_review", res.NeedsReview,
		"record", jsonPath,
	)
	return nil
}
