package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestExecRunnerLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := execRunner{logger: logger}

	_, _, err := r.Run(context.Background(), "/nonexistent/docstruct-test-binary")
	if err == nil {
		t.Fatal("expected error for a missing binary")
	}
	if !strings.Contains(buf.String(), "ocr.exec.failed") {
		t.Errorf("log output %q missing ocr.exec.failed event", buf.String())
	}
}

func TestExecRunnerSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := execRunner{logger: logger}

	out, _, err := r.Run(context.Background(), "sh", "-c", "printf bonjour")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(out) != "bonjour" {
		t.Errorf("stdout = %q, want bonjour", out)
	}
	if !strings.Contains(buf.String(), "ocr.exec.ok") {
		t.Errorf("log output %q missing ocr.exec.ok event", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("court", 10); got != "court" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate(strings.Repeat("a", 20), 10); got != strings.Repeat("a", 10)+"...(truncated)" {
		t.Errorf("truncate = %q", got)
	}
}
