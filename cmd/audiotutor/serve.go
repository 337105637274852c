package main

import (
	"context"
	"errors"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-tutor/internal/httpapi"
	"github.com/nguyentantai21042004/audio-tutor/internal/metrics"
	"github.com/nguyentantai21042004/audio-tutor/internal/watcher"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when enabled, the inbox watcher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfgFile)
		},
	}
}

func runServe(ctx context.Context, cfgFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer a.close()

	log := a.logger
	log.Info(ctx, "========================================")
	log.Info(ctx, "AudioTutor")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Gemini model: %s", a.cfg.Gemini.Model)
	log.Info(ctx, "TTS voice: %s %s, %s", a.cfg.TTS.LanguageCode, a.cfg.TTS.Gender, a.cfg.TTS.Encoding)
	log.Info(ctx, "Audio file: %s", a.store.Path())

	srv := httpapi.New(a.cfg, httpapi.Deps{
		Extractor:  a.extractor,
		Speaker:    a.speaker,
		Summarizer: a.summarizer,
		Processor:  a.processor,
		Store:      a.store,
		Metrics:    metrics.New(),
	}, log)

	errChan := make(chan error, 2)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	if a.cfg.Watcher.Enabled {
		w, err := watcher.New(a.cfg.Paths.Inbox, a.processor.ProcessFile, log,
			a.cfg.Performance.MaxConcurrent, a.cfg.Watcher.SettleDelay)
		if err != nil {
			return err
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- err
			}
		}()
		log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Inbox)
		log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	}

	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info(context.Background(), "Shutdown signal received")
	case runErr = <-errChan:
		if runErr != nil {
			log.Error(context.Background(), "Service error: %v", runErr)
		}
	}

	log.Info(context.Background(), "Shutting down gracefully...")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP shutdown: %v", err)
	}

	log.Info(context.Background(), "AudioTutor stopped")
	return runErr
}
