// Package ollama implements the inference backend against a local Ollama
// server's /api/generate endpoint.
package ollama

import (
	"log/slog"
	"net/http"
	"time"
)

type Config struct {
	BaseURL     string        // default http://localhost:11434
	Model       string        // e.g. "llama3.2"
	Temperature float32       // 0 for reproducible extraction
	NumCtx      int           // model context window size
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}
	if cfg.NumCtx <= 0 {
		cfg.NumCtx = 8192
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
