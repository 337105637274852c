package speech

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"google.golang.org/api/option"
)

func newGoogleClient(ctx context.Context, credentialsFile string) (ttsClient, error) {
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech client: %w", err)
	}
	return client, nil
}
