package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-tutor/internal/apperror"
	"github.com/nguyentantai21042004/audio-tutor/internal/audiostore"
	"github.com/nguyentantai21042004/audio-tutor/internal/config"
	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
)

type fakeTTS struct {
	audio  []byte
	err    error
	calls  int
	last   *texttospeechpb.SynthesizeSpeechRequest
	closed bool
}

func (f *fakeTTS) SynthesizeSpeech(_ context.Context, req *texttospeechpb.SynthesizeSpeechRequest, _ ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &texttospeechpb.SynthesizeSpeechResponse{AudioContent: f.audio}, nil
}

func (f *fakeTTS) Close() error {
	f.closed = true
	return nil
}

func defaultTTSConfig(credentials string) config.TTSConfig {
	return config.TTSConfig{
		CredentialsFile: credentials,
		LanguageCode:    "en-US",
		Gender:          "NEUTRAL",
		Encoding:        "MP3",
	}
}

func writeKeyFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "googleservicekey.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0600))
	return path
}

func newTestSpeaker(t *testing.T, credentials string, tts *fakeTTS) (*implSpeaker, audiostore.Store) {
	t.Helper()
	store := audiostore.New(t.TempDir(), "output.mp3", logger.NewNop())
	sp, err := New(defaultTTSConfig(credentials), 0, store, logger.NewNop())
	require.NoError(t, err)

	impl := sp.(*implSpeaker)
	impl.newClient = func(context.Context, string) (ttsClient, error) { return tts, nil }
	return impl, store
}

func TestSpeak_StoresAudioAndReturnsReference(t *testing.T) {
	tts := &fakeTTS{audio: []byte("ID3-mp3-bytes")}
	sp, store := newTestSpeaker(t, writeKeyFile(t), tts)

	ref, err := sp.Speak(context.Background(), "Hello there")
	require.NoError(t, err)
	assert.Equal(t, "/output.mp3", ref)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "ID3-mp3-bytes", string(data))

	req := tts.last
	require.NotNil(t, req)
	assert.Equal(t, "Hello there", req.GetInput().GetText())
	assert.Equal(t, "en-US", req.GetVoice().GetLanguageCode())
	assert.Equal(t, texttospeechpb.SsmlVoiceGender_NEUTRAL, req.GetVoice().GetSsmlGender())
	assert.Equal(t, texttospeechpb.AudioEncoding_MP3, req.GetAudioConfig().GetAudioEncoding())
}

func TestSpeak_SequentialCallsOverwrite(t *testing.T) {
	tts := &fakeTTS{audio: []byte("first")}
	sp, store := newTestSpeaker(t, writeKeyFile(t), tts)

	ref1, err := sp.Speak(context.Background(), "one")
	require.NoError(t, err)
	tts.audio = []byte("second")
	ref2, err := sp.Speak(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, ref1, ref2)
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSynthesize_Errors(t *testing.T) {
	tests := []struct {
		name      string
		keyFile   bool
		text      string
		ttsErr    error
		audio     []byte
		wantErr   error
		wantCalls int
	}{
		{"empty text", true, "", nil, nil, apperror.ErrInvalidInput, 0},
		{"missing key file", false, "hello", nil, nil, apperror.ErrConfigurationMissing, 0},
		{"upstream error", true, "hello", errors.New("PermissionDenied"), nil, apperror.ErrUpstreamFailure, 1},
		{"empty audio", true, "hello", nil, nil, apperror.ErrUpstreamFailure, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := filepath.Join(t.TempDir(), "missing.json")
			if tt.keyFile {
				key = writeKeyFile(t)
			}
			tts := &fakeTTS{audio: tt.audio, err: tt.ttsErr}
			sp, store := newTestSpeaker(t, key, tts)

			_, err := sp.Speak(context.Background(), tt.text)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCalls, tts.calls)
			assert.NoFileExists(t, store.Path())
		})
	}
}

func TestNew_RejectsUnknownVoiceSettings(t *testing.T) {
	store := audiostore.New(t.TempDir(), "output.mp3", logger.NewNop())

	cfg := defaultTTSConfig("key.json")
	cfg.Gender = "NOT_A_GENDER"
	_, err := New(cfg, 0, store, logger.NewNop())
	assert.Error(t, err)

	cfg = defaultTTSConfig("key.json")
	cfg.Encoding = "NOT_AN_ENCODING"
	_, err = New(cfg, 0, store, logger.NewNop())
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	tts := &fakeTTS{audio: []byte("x")}
	sp, _ := newTestSpeaker(t, writeKeyFile(t), tts)

	require.NoError(t, sp.Close())
	assert.False(t, tts.closed)

	_, err := sp.Synthesize(context.Background(), "hi")
	require.NoError(t, err)
	require.NoError(t, sp.Close())
	assert.True(t, tts.closed)
}
