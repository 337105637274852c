package processor

import (
	"github.com/nguyentantai21042004/audio-tutor/internal/config"
	"github.com/nguyentantai21042004/audio-tutor/internal/extractor"
	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
	"github.com/nguyentantai21042004/audio-tutor/internal/speech"
	"github.com/nguyentantai21042004/audio-tutor/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	extractor  extractor.Extractor
	speaker    speech.Speaker
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, ext extractor.Extractor, sp speech.Speaker, sum summarizer.Summarizer, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		extractor:  ext,
		speaker:    sp,
		summarizer: sum,
		logger:     log,
	}
}
