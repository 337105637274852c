package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
)

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	settleDelay   time.Duration
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start processes documents already in the inbox, then monitors it for new ones
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)

	if err := w.processExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isDocumentFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-PDF file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New document detected: %s", event.Name)

			// Small delay to ensure file is fully written
			select {
			case <-time.After(w.settleDelay):
			case <-ctx.Done():
				continue
			}

			if err := w.dispatch(ctx, event.Name); err != nil {
				w.wg.Wait()
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// dispatch hands a file to the handler once a semaphore slot is free
func (w *implWatcher) dispatch(ctx context.Context, filePath string) error {
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, filePath); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
		}
	}()
	return nil
}

func (w *implWatcher) processExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return fmt.Errorf("read inbox: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !isDocumentFile(e.Name()) {
			continue
		}
		if err := w.dispatch(ctx, filepath.Join(w.inputDir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// isDocumentFile checks if the file has a PDF extension
func isDocumentFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".pdf"
}
