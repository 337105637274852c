package summarizer

import "context"

// Summarizer turns document text into a short numbered list of key points.
type Summarizer interface {
	// Summarize returns the model's raw response for text.
	Summarize(ctx context.Context, text string) (string, error)
	// WriteDocx renders a summary as a printable DOCX file at outputPath.
	WriteDocx(title, summary, outputPath string) error
}

// contentGenerator is the slice of the Gemini client the summarizer needs.
type contentGenerator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}
