package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/audio-tutor/internal/apperror"
)

const summaryPrompt = "Create a non markdown, short, numbered list summary with key points of this for me. Put each number on its own line: "

// Summarize forwards text to Gemini with the fixed numbered-list instruction
// and returns the response unmodified. There is no retry.
func (s *implSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("summarize: %w", apperror.ErrInvalidInput)
	}
	if s.apiKey == "" {
		return "", fmt.Errorf("gemini api token: %w", apperror.ErrConfigurationMissing)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("gemini client: %w: %w", apperror.ErrUpstreamFailure, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Debug(ctx, "Requesting summary from %s for %d characters", s.model, len(text))

	summary, err := client.Generate(ctx, s.model, summaryPrompt+text)
	if err != nil {
		return "", fmt.Errorf("summarize: %w: %w", apperror.ErrUpstreamFailure, err)
	}
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("summarize: %w: empty response", apperror.ErrUpstreamFailure)
	}

	return summary, nil
}

func (s *implSummarizer) getClient(ctx context.Context) (contentGenerator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}
	client, err := s.newClient(context.WithoutCancel(ctx), s.apiKey)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}
