package speech

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/nguyentantai21042004/audio-tutor/internal/audiostore"
	"github.com/nguyentantai21042004/audio-tutor/internal/config"
	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
)

type implSpeaker struct {
	credentialsFile string
	languageCode    string
	gender          texttospeechpb.SsmlVoiceGender
	encoding        texttospeechpb.AudioEncoding
	timeout         time.Duration
	store           audiostore.Store
	logger          logger.Logger

	newClient func(ctx context.Context, credentialsFile string) (ttsClient, error)

	mu     sync.Mutex
	client ttsClient
}

// New creates a Cloud Text-to-Speech backed Speaker. The client is created
// on first use from the service-account key file in cfg.
func New(cfg config.TTSConfig, timeout time.Duration, store audiostore.Store, log logger.Logger) (Speaker, error) {
	gender, ok := texttospeechpb.SsmlVoiceGender_value[strings.ToUpper(cfg.Gender)]
	if !ok {
		return nil, fmt.Errorf("unknown tts gender %q", cfg.Gender)
	}
	encoding, ok := texttospeechpb.AudioEncoding_value[strings.ToUpper(cfg.Encoding)]
	if !ok {
		return nil, fmt.Errorf("unknown tts encoding %q", cfg.Encoding)
	}

	return &implSpeaker{
		credentialsFile: cfg.CredentialsFile,
		languageCode:    cfg.LanguageCode,
		gender:          texttospeechpb.SsmlVoiceGender(gender),
		encoding:        texttospeechpb.AudioEncoding(encoding),
		timeout:         timeout,
		store:           store,
		logger:          log,
		newClient:       newGoogleClient,
	}, nil
}
