package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adour-labs/docstruct/internal/llm"
)

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.cfg.Model }

// Generate implements llm.Generator against /api/generate. The server is
// asked for JSON-formatted output and deterministic decoding; the raw
// response text comes back for the orchestrator's recovery pass.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":  c.cfg.Model,
		"prompt": prompt,
		"stream": false,
		"format": "json",
		"options": map[string]any{
			"temperature": c.cfg.Temperature,
			"num_ctx":     c.cfg.NumCtx,
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/generate"
	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, c.logger)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	var resp struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("ollama server error: %s", resp.Error)
	}
	if resp.Response == "" {
		return "", fmt.Errorf("empty response from model %s", c.cfg.Model)
	}
	return resp.Response, nil
}
