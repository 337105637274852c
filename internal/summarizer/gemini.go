package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type genaiGenerator struct {
	client *genai.Client
}

func newGenaiGenerator(ctx context.Context, apiKey string) (contentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &genaiGenerator{client: client}, nil
}

// Generate sends prompt to model and concatenates the text parts of the
// first candidate.
func (g *genaiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
