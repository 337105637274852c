package extractor

import (
	"context"
	"iter"
)

// Extractor turns a PDF payload into plain text, one fragment per page.
type Extractor interface {
	// Extract reads every page and returns the assembled document.
	Extract(ctx context.Context, data []byte) (*Document, error)
	// Pages yields page fragments lazily in page order. Iteration stops at
	// the first error.
	Pages(ctx context.Context, data []byte) iter.Seq2[Page, error]
}
