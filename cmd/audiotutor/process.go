package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-tutor/internal/apperror"
	"github.com/nguyentantai21042004/audio-tutor/internal/processor"
)

func newProcessCommand(cfgFile *string) *cobra.Command {
	var (
		text    string
		archive bool
	)

	cmd := &cobra.Command{
		Use:   "process [file.pdf]",
		Short: "Narrate and summarize one PDF or a piece of text",
		Long: `Process runs speech synthesis and then summarization once.

With --text the narration overwrites the shared audio file and the summary is
printed. With a PDF path and --archive the document is handled like an inbox
arrival: per-document artifacts go to the output directory and the PDF is
moved to the archive.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" && len(args) == 0 {
				return fmt.Errorf("a PDF path or --text is required: %w", apperror.ErrInvalidInput)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer a.close()

			if archive && len(args) == 1 {
				return a.processor.ProcessFile(ctx, args[0])
			}

			in := processor.Input{Text: text}
			if in.Text == "" {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read %s: %w", args[0], err)
				}
				in.PDF = data
			}

			res := a.processor.Process(ctx, in)
			return report(cmd, res)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "text to narrate and summarize instead of a PDF")
	cmd.Flags().BoolVar(&archive, "archive", false, "write per-document artifacts and archive the PDF")

	return cmd
}

func report(cmd *cobra.Command, res *processor.Result) error {
	if res.Err != nil {
		return res.Err
	}

	out := cmd.OutOrStdout()
	if res.AudioErr != nil {
		fmt.Fprintf(out, "Audio: failed: %v\n", res.AudioErr)
	} else {
		fmt.Fprintf(out, "Audio: %s\n", res.AudioRef)
	}
	if res.SummaryErr != nil {
		fmt.Fprintf(out, "Summary: failed: %v\n", res.SummaryErr)
	} else {
		fmt.Fprintf(out, "Summary:\n%s\n", res.Summary)
	}

	if res.AudioErr != nil && res.SummaryErr != nil {
		return errors.Join(res.AudioErr, res.SummaryErr)
	}
	return nil
}
