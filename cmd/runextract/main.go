// runextract runs the extraction stage alone: file in, raw text out. Useful
// for tuning OCR settings without an inference server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/adour-labs/docstruct/internal/common"
	"github.com/adour-labs/docstruct/internal/extract"
	"github.com/adour-labs/docstruct/internal/ocr"
	"github.com/adour-labs/docstruct/internal/preprocess"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runextract <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	res, err := engine.Extract(ctx, path)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	logger.Info("extraction OK",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"confidence", res.Confidence,
		"warnings", len(res.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	fmt.Println(res.Text)
}
