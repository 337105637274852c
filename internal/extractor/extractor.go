package extractor

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/nguyentantai21042004/audio-tutor/internal/apperror"
)

var errNoText = errors.New("no text content found")

// Extract tries each backend in order and returns the first document that
// carries any text. Unreadable or text-free input is an ErrExtractionFailed.
func (e *implExtractor) Extract(ctx context.Context, data []byte) (*Document, error) {
	if err := e.checkPayload(data); err != nil {
		return nil, err
	}

	lastErr := errNoText
	for _, op := range e.openers {
		src, err := op.open(ctx, data)
		if err != nil {
			e.logger.Warn(ctx, "%s could not open document: %v", op.name, err)
			lastErr = err
			continue
		}

		doc := &Document{Backend: op.name}
		for page, err := range e.pagesFrom(ctx, src) {
			if err != nil {
				return nil, err
			}
			doc.Pages = append(doc.Pages, page)
		}

		if doc.empty() {
			e.logger.Warn(ctx, "%s found no text in %d pages", op.name, len(doc.Pages))
			lastErr = errNoText
			continue
		}

		e.logger.Debug(ctx, "Extracted %d pages with %s", len(doc.Pages), op.name)
		return doc, nil
	}

	return nil, fmt.Errorf("extract document: %w: %w", apperror.ErrExtractionFailed, lastErr)
}

// Pages yields page fragments from the first backend that finds any text.
// Leading blank pages are held back until a page with text shows up, so a
// text-free document falls through to the next backend like Extract does.
func (e *implExtractor) Pages(ctx context.Context, data []byte) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		if err := e.checkPayload(data); err != nil {
			yield(Page{}, err)
			return
		}

		lastErr := errNoText
		for _, op := range e.openers {
			src, err := op.open(ctx, data)
			if err != nil {
				e.logger.Warn(ctx, "%s could not open document: %v", op.name, err)
				lastErr = err
				continue
			}

			var blank []Page
			found := false
			for page, err := range e.pagesFrom(ctx, src) {
				if err != nil {
					yield(Page{}, err)
					return
				}
				if !found {
					if page.blank() {
						blank = append(blank, page)
						continue
					}
					found = true
					for _, b := range blank {
						if !yield(b, nil) {
							return
						}
					}
				}
				if !yield(page, nil) {
					return
				}
			}
			if found {
				return
			}

			e.logger.Warn(ctx, "%s found no text in %d pages", op.name, len(blank))
			lastErr = errNoText
		}

		yield(Page{}, fmt.Errorf("extract document: %w: %w", apperror.ErrExtractionFailed, lastErr))
	}
}

func (e *implExtractor) pagesFrom(ctx context.Context, src pageSource) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		for pageNr := 1; pageNr <= src.PageCount(); pageNr++ {
			if err := ctx.Err(); err != nil {
				yield(Page{}, err)
				return
			}

			text, err := src.PageText(pageNr)
			if err != nil {
				e.logger.Warn(ctx, "Skipping text of page %d: %v", pageNr, err)
				text = ""
			}

			if !yield(Page{Number: pageNr, Text: text}, nil) {
				return
			}
		}
	}
}

func (e *implExtractor) checkPayload(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty document: %w", apperror.ErrInvalidInput)
	}
	if e.maxFileSize > 0 && int64(len(data)) > e.maxFileSize {
		return fmt.Errorf("document is %d bytes, limit is %d: %w", len(data), e.maxFileSize, apperror.ErrInvalidInput)
	}
	return nil
}
