package summarizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

var reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// WriteDocx renders the summary as a titled document, one paragraph per point.
func (s *implSummarizer) WriteDocx(title, summary, outputPath string) error {
	points := Points(summary)
	if len(points) == 0 {
		return fmt.Errorf("summary has no points")
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)

	for _, point := range points {
		if point == "---" {
			continue
		}
		addRichText(doc.AddParagraph(""), point)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText keeps **bold** spans the model sometimes emits despite the
// no-markdown instruction.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
