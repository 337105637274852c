package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const backendPdftotext = "pdftotext"

type pdftotextSource struct {
	pages []string
}

// openPdftotext runs poppler's pdftotext over a temp copy of data. pdftotext
// ends every page with a form feed.
func (e *implExtractor) openPdftotext(ctx context.Context, data []byte) (pageSource, error) {
	if err := os.MkdirAll(e.tempDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	f, err := os.CreateTemp(e.tempDir, "extract-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	out, err := e.executor.Execute(ctx, e.pdftotextPath, "-enc", "UTF-8", f.Name(), "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	return &pdftotextSource{pages: splitFormFeed(out)}, nil
}

func splitFormFeed(out string) []string {
	pages := strings.Split(out, "\f")
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	for i, p := range pages {
		pages[i] = normalizeSpace(p)
	}
	return pages
}

func (s *pdftotextSource) PageCount() int {
	return len(s.pages)
}

func (s *pdftotextSource) PageText(pageNr int) (string, error) {
	if pageNr < 1 || pageNr > len(s.pages) {
		return "", fmt.Errorf("page %d out of range", pageNr)
	}
	return s.pages[pageNr-1], nil
}
