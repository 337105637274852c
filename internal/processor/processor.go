package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-tutor/internal/apperror"
)

// Process orchestrates one text-or-document submission
func (p *implProcessor) Process(ctx context.Context, in Input) *Result {
	text, err := p.resolveText(ctx, in)
	if err != nil {
		return &Result{Err: err}
	}

	res := &Result{Text: text}

	// Step 1: Generate audio
	res.AudioRef, res.AudioErr = p.speaker.Speak(ctx, text)
	if res.AudioErr != nil {
		p.logger.Error(ctx, "Failed to synthesize speech: %v", res.AudioErr)
	}

	// Step 2: Generate summary
	res.Summary, res.SummaryErr = p.summarizer.Summarize(ctx, text)
	if res.SummaryErr != nil {
		p.logger.Error(ctx, "Failed to generate summary: %v", res.SummaryErr)
	}

	return res
}

// ProcessFile runs the pipeline on a PDF and writes <name>.mp3, <name>.txt
// and <name>.docx into the output folder. The PDF is archived unless both
// requests failed.
func (p *implProcessor) ProcessFile(ctx context.Context, pdfPath string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting document processing: %s", pdfPath)
	p.logger.Info(ctx, "========================================")

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	// Step 1: Extract text
	text, err := p.resolveText(ctx, Input{PDF: data})
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Step 2: Synthesize speech
	var audioPath string
	audio, audioErr := p.speaker.Synthesize(ctx, text)
	if audioErr != nil {
		p.logger.Error(ctx, "Failed to synthesize speech for %s: %v", name, audioErr)
	} else {
		audioPath = filepath.Join(p.cfg.Paths.Output, name+".mp3")
		if audioErr = writeArtifact(audioPath, audio); audioErr != nil {
			p.logger.Error(ctx, "Failed to write audio for %s: %v", name, audioErr)
		}
	}

	// Step 3: Summarize
	var summaryPath string
	summary, summaryErr := p.summarizer.Summarize(ctx, text)
	if summaryErr != nil {
		p.logger.Error(ctx, "Failed to generate summary for %s: %v", name, summaryErr)
	} else {
		summaryPath = filepath.Join(p.cfg.Paths.Output, name+".txt")
		if summaryErr = writeArtifact(summaryPath, []byte(summary)); summaryErr != nil {
			p.logger.Error(ctx, "Failed to write summary for %s: %v", name, summaryErr)
		}
		docxPath := filepath.Join(p.cfg.Paths.Output, name+".docx")
		if err := p.summarizer.WriteDocx(name, summary, docxPath); err != nil {
			p.logger.Warn(ctx, "Failed to write summary docx for %s: %v", name, err)
		}
	}

	if audioErr != nil && summaryErr != nil {
		return fmt.Errorf("process %s: %w", name, errors.Join(audioErr, summaryErr))
	}

	// Step 4: Move original document to archived folder
	if err := p.moveToArchived(ctx, pdfPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed!")
	if audioPath != "" && audioErr == nil {
		p.logger.Info(ctx, "Output audio: %s", audioPath)
	}
	if summaryPath != "" && summaryErr == nil {
		p.logger.Info(ctx, "Output summary: %s", summaryPath)
	}
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return nil
}

// resolveText returns the typed text, or extracts it from the PDF payload.
// Empty text is rejected before any external call.
func (p *implProcessor) resolveText(ctx context.Context, in Input) (string, error) {
	if strings.TrimSpace(in.Text) != "" {
		return in.Text, nil
	}
	if len(in.PDF) == 0 {
		return "", fmt.Errorf("text input is required: %w", apperror.ErrInvalidInput)
	}

	doc, err := p.extractor.Extract(ctx, in.PDF)
	if err != nil {
		return "", err
	}
	p.logger.Info(ctx, "Extracted %d pages with %s", len(doc.Pages), doc.Backend)
	return doc.Text(), nil
}
