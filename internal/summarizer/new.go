package summarizer

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/audio-tutor/internal/config"
	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
)

type implSummarizer struct {
	apiKey  string
	model   string
	timeout time.Duration
	logger  logger.Logger

	newClient func(ctx context.Context, apiKey string) (contentGenerator, error)

	mu     sync.Mutex
	client contentGenerator
}

// New creates a Gemini-backed Summarizer. The client is built on first use,
// so a missing token only fails the requests that need it.
func New(cfg config.GeminiConfig, timeout time.Duration, log logger.Logger) Summarizer {
	return &implSummarizer{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		timeout:   timeout,
		logger:    log,
		newClient: newGenaiGenerator,
	}
}
