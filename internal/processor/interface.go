package processor

import "context"

// Processor sequences extraction, speech synthesis and summarization.
type Processor interface {
	// Process runs the speech request and then the summary request for one
	// input. The two requests are independent: a failure in one is reported
	// in Result and does not stop the other.
	Process(ctx context.Context, in Input) *Result
	// ProcessFile runs the pipeline on a PDF on disk and writes per-document
	// artifacts to the output directory.
	ProcessFile(ctx context.Context, pdfPath string) error
}

// Input is either typed text or a PDF payload. Text wins when both are set.
type Input struct {
	Text string
	PDF  []byte
}

// Result carries the outcome of each independent request.
type Result struct {
	Text       string
	AudioRef   string
	Summary    string
	Err        error // input or extraction failure; no request was made
	AudioErr   error
	SummaryErr error
}

// OK reports whether both requests succeeded.
func (r *Result) OK() bool {
	return r.Err == nil && r.AudioErr == nil && r.SummaryErr == nil
}
