package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/audio-tutor/internal/audiostore"
	"github.com/nguyentantai21042004/audio-tutor/internal/config"
	"github.com/nguyentantai21042004/audio-tutor/internal/extractor"
	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
	"github.com/nguyentantai21042004/audio-tutor/internal/processor"
	"github.com/nguyentantai21042004/audio-tutor/internal/speech"
	"github.com/nguyentantai21042004/audio-tutor/internal/summarizer"
	"github.com/nguyentantai21042004/audio-tutor/pkg/executor"
)

// app holds the wired components shared by every command.
type app struct {
	cfg        *config.Config
	logger     logger.Logger
	extractor  extractor.Extractor
	store      audiostore.Store
	speaker    speech.Speaker
	summarizer summarizer.Summarizer
	processor  processor.Processor
}

func newApp(ctx context.Context, cfgFile string) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	if cfg.Gemini.APIKey == "" {
		log.Warn(ctx, "%s is not set; summary requests will fail", cfg.Gemini.APIKeyEnv)
	}
	if _, err := os.Stat(cfg.TTS.CredentialsFile); err != nil {
		log.Warn(ctx, "TTS key file %s not found; speech requests will fail", cfg.TTS.CredentialsFile)
	}

	ext := extractor.New(cfg.Extract, cfg.Paths.Temp, executor.New(), log)
	store := audiostore.New(cfg.Audio.PublicDir, cfg.Audio.FileName, log)
	sp, err := speech.New(cfg.TTS, cfg.Upstream.Timeout, store, log)
	if err != nil {
		return nil, fmt.Errorf("create speaker: %w", err)
	}
	sum := summarizer.New(cfg.Gemini, cfg.Upstream.Timeout, log)

	return &app{
		cfg:        cfg,
		logger:     log,
		extractor:  ext,
		store:      store,
		speaker:    sp,
		summarizer: sum,
		processor:  processor.New(cfg, ext, sp, sum, log),
	}, nil
}

func (a *app) close() {
	if err := a.speaker.Close(); err != nil {
		a.logger.Warn(context.Background(), "Close TTS client: %v", err)
	}
	_ = a.logger.Sync()
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Audio.PublicDir,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}
	if cfg.Watcher.Enabled {
		dirs = append(dirs, cfg.Paths.Inbox)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
