package speech

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/nguyentantai21042004/audio-tutor/internal/apperror"
)

// Speak synthesizes text and overwrites the shared audio output with it.
func (s *implSpeaker) Speak(ctx context.Context, text string) (string, error) {
	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}

	ref, err := s.store.Save(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}

	s.logger.Info(ctx, "Speech synthesis successful: %d bytes -> %s", len(audio), ref)
	return ref, nil
}

// Synthesize requests one fixed voice and encoding for text. There is no retry.
func (s *implSpeaker) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("synthesize: %w", apperror.ErrInvalidInput)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Debug(ctx, "Requesting %s speech (%s, %s) for %d characters", s.encoding, s.languageCode, s.gender, len(text))

	resp, err := client.SynthesizeSpeech(ctx, s.request(text))
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w: %w", apperror.ErrUpstreamFailure, err)
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, fmt.Errorf("synthesize: %w: empty audio content", apperror.ErrUpstreamFailure)
	}

	return resp.GetAudioContent(), nil
}

func (s *implSpeaker) request(text string) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: s.languageCode,
			SsmlGender:   s.gender,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: s.encoding,
		},
	}
}

func (s *implSpeaker) getClient(ctx context.Context) (ttsClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	if _, err := os.Stat(s.credentialsFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("tts credentials %s: %w", s.credentialsFile, apperror.ErrConfigurationMissing)
		}
		return nil, fmt.Errorf("tts credentials %s: %w: %w", s.credentialsFile, apperror.ErrConfigurationMissing, err)
	}

	client, err := s.newClient(context.WithoutCancel(ctx), s.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("tts client: %w: %w", apperror.ErrUpstreamFailure, err)
	}
	s.client = client
	return client, nil
}

func (s *implSpeaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}
