package extract

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// extractNativePDF pulls the embedded text layer out of a born-digital PDF
// without rasterizing. Malformed PDFs can make the reader panic; that is
// recovered into an error so the caller can fall back to OCR.
func extractNativePDF(path string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("native pdf reader panic: %v", r)
		}
	}()

	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("read file: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("open PDF: %w", err)
	}

	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 0; i < numPages; i++ {
		page := r.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("extract page %d: %w", i+1, err)
		}
		buf.WriteString(pageText)
		if i < numPages-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.String(), numPages, nil
}
