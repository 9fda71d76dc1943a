package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner scripts external command behavior. For pdftoppm it materializes
// page files the way the real binary would; for tesseract it replays canned
// text.
type fakeRunner struct {
	pages    int
	text     string
	err      error
	lastArgs []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.lastArgs = append([]string{name}, args...)
	if f.err != nil {
		return nil, []byte("boom"), f.err
	}
	if name == "pdftoppm" {
		prefix := args[len(args)-1]
		for i := 1; i <= f.pages; i++ {
			if err := os.WriteFile(fmt.Sprintf("%s-%02d.png", prefix, i), []byte("png"), 0o644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	}
	return []byte(f.text), nil, nil
}

func TestRasterizePageOrder(t *testing.T) {
	dir := t.TempDir()
	c := NewClient(Config{}, nil).WithRunner(&fakeRunner{pages: 3})

	pages, err := c.Rasterize(context.Background(), "in.pdf", dir)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	for i, p := range pages {
		want := filepath.Join(dir, fmt.Sprintf("page-%02d.png", i+1))
		if p != want {
			t.Errorf("page %d = %q, want %q", i, p, want)
		}
	}
}

func TestRasterizeMaxPages(t *testing.T) {
	dir := t.TempDir()
	c := NewClient(Config{MaxPages: 2}, nil).WithRunner(&fakeRunner{pages: 5})

	pages, err := c.Rasterize(context.Background(), "in.pdf", dir)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want cap of 2", len(pages))
	}
}

func TestRasterizeNoOutput(t *testing.T) {
	c := NewClient(Config{}, nil).WithRunner(&fakeRunner{pages: 0})
	if _, err := c.Rasterize(context.Background(), "in.pdf", t.TempDir()); err == nil {
		t.Fatal("expected error when no page images are produced")
	}
}

func TestRecognizeArgs(t *testing.T) {
	fr := &fakeRunner{text: "hello"}
	c := NewClient(Config{TessdataDir: "/opt/tessdata"}, nil).WithRunner(fr)

	got, err := c.Recognize(context.Background(), "page.png")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if got != "hello" {
		t.Errorf("text = %q, want %q", got, "hello")
	}

	joined := strings.Join(fr.lastArgs, " ")
	for _, want := range []string{"tesseract page.png stdout", "-l fra+eng", "--psm 11", "--tessdata-dir /opt/tessdata"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
}

func TestHeuristicConfidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  float32
		max  float32
	}{
		{"empty", "", 0.2, 0.2},
		{"date only", "meeting in 2023", 0.4, 0.4},
		{"rich invoice", "Facture du 12/03/2024\ncontact@acme.fr\nTotal: 1 234,56 €\n" + strings.Repeat("ligne de détail produit\n", 12), 0.85, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeuristicConfidence(tt.text)
			if got < tt.min || got > tt.max {
				t.Errorf("HeuristicConfidence = %v, want in [%v, %v]", got, tt.min, tt.max)
			}
		})
	}
}
