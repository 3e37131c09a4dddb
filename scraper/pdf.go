package scraper

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

const pdfTitleMaxRunes = 120

// extractPDF pulls plain text out of a PDF body, page by page. Pages
// that fail text extraction are skipped.
func extractPDF(content []byte) (title, text string, err error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", "", errors.Wrap(err, "open PDF")
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}

	text = strings.TrimSpace(b.String())
	return pdfTitle(text), text, nil
}

// pdfTitle takes the first line long enough to look like a heading,
// capped at pdfTitleMaxRunes.
func pdfTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 8 {
			continue
		}
		if runes := []rune(line); len(runes) > pdfTitleMaxRunes {
			line = string(runes[:pdfTitleMaxRunes])
		}
		return line
	}
	return ""
}
