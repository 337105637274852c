package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const backendPDFCPU = "pdfcpu"

type pdfcpuSource struct {
	ctx *model.Context
}

func openPDFCPU(_ context.Context, data []byte) (pageSource, error) {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &pdfcpuSource{ctx: pdfCtx}, nil
}

func (s *pdfcpuSource) PageCount() int {
	return s.ctx.PageCount
}

// PageText scrapes the text-showing operators of the page content stream.
func (s *pdfcpuSource) PageText(pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(s.ctx, pageNr)
	if err != nil {
		return "", fmt.Errorf("page %d content: %w", pageNr, err)
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("page %d read: %w", pageNr, err)
	}
	return joinItems(textItems(data)), nil
}
