// Package ocr wraps the external poppler and tesseract binaries behind a
// Runner seam so the extraction engine stays testable without either
// installed.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang        string // tesseract language string, default bilingual "fra+eng"
	TessdataDir string
	DPI         int // rasterization DPI for scanned PDFs, default 300
	PSM         int // page segmentation mode; 11 (sparse text) suits column layouts
	MaxPages    int // 0 = no limit
}

type Client struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "fra+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 11
	}
	return &Client{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (c *Client) WithRunner(r Runner) *Client {
	c.runner = r
	return c
}

func (c *Client) Lang() string { return c.cfg.Lang }

// Rasterize renders each page of a PDF to a PNG under dir at the configured
// DPI and returns the page file paths in page order.
func (c *Client) Rasterize(ctx context.Context, pdfPath, dir string) ([]string, error) {
	prefix := filepath.Join(dir, "page")
	// pdftoppm -r 300 -png <in.pdf> <dir/page>
	_, errb, err := c.runner.Run(ctx, c.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", c.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// pdftoppm zero-pads page numbers, so lexical order is page order.
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if c.cfg.MaxPages > 0 && len(matches) > c.cfg.MaxPages {
		matches = matches[:c.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}
	return matches, nil
}

// Recognize runs tesseract over a single raster and returns its plain text.
func (c *Client) Recognize(ctx context.Context, imagePath string) (string, error) {
	args := []string{imagePath, "stdout", "-l", c.cfg.Lang, "--psm", fmt.Sprintf("%d", c.cfg.PSM)}
	if c.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", c.cfg.TessdataDir)
	}

	out, errb, err := c.runner.Run(ctx, c.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return string(out), nil
}
