package extractor

import (
	"context"

	"github.com/nguyentantai21042004/audio-tutor/internal/config"
	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
	"github.com/nguyentantai21042004/audio-tutor/pkg/executor"
)

// pageSource gives random access to the text of each page of an opened document.
type pageSource interface {
	PageCount() int
	PageText(pageNr int) (string, error)
}

type implExtractor struct {
	maxFileSize   int64
	pdftotextPath string
	tempDir       string
	executor      executor.Executor
	logger        logger.Logger

	// openers are tried in order; the first one that opens the payload wins.
	openers []opener
}

type opener struct {
	name string
	open func(ctx context.Context, data []byte) (pageSource, error)
}

// New creates an Extractor backed by pdfcpu. When cfg.PdftotextPath is set,
// poppler's pdftotext is used as a fallback for documents pdfcpu cannot read.
func New(cfg config.ExtractConfig, tempDir string, exec executor.Executor, log logger.Logger) Extractor {
	e := &implExtractor{
		maxFileSize:   cfg.MaxFileSize,
		pdftotextPath: cfg.PdftotextPath,
		tempDir:       tempDir,
		executor:      exec,
		logger:        log,
	}

	e.openers = []opener{{name: backendPDFCPU, open: openPDFCPU}}
	if cfg.PdftotextPath != "" && exec != nil {
		e.openers = append(e.openers, opener{name: backendPdftotext, open: e.openPdftotext})
	}

	return e
}
