package speech

import (
	"context"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
)

// Speaker synthesizes speech from text.
type Speaker interface {
	// Speak synthesizes text, stores it as the shared audio output and
	// returns the output's public reference.
	Speak(ctx context.Context, text string) (string, error)
	// Synthesize returns the encoded audio without storing it.
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Close() error
}

// ttsClient is the subset of the Cloud Text-to-Speech client in use.
type ttsClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}
