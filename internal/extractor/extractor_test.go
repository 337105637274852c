package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-tutor/internal/apperror"
	"github.com/nguyentantai21042004/audio-tutor/internal/config"
	"github.com/nguyentantai21042004/audio-tutor/internal/logger"
)

type fakeSource struct {
	pages []string
	reads int
}

func (s *fakeSource) PageCount() int { return len(s.pages) }

func (s *fakeSource) PageText(pageNr int) (string, error) {
	s.reads++
	return s.pages[pageNr-1], nil
}

type fakeExecutor struct {
	out   string
	err   error
	calls int
	args  []string
}

func (f *fakeExecutor) Execute(_ context.Context, name string, args ...string) (string, error) {
	f.calls++
	f.args = append([]string{name}, args...)
	return f.out, f.err
}

func newTestExtractor(openers ...opener) *implExtractor {
	return &implExtractor{maxFileSize: 1 << 20, logger: logger.NewNop(), openers: openers}
}

func staticOpener(name string, src pageSource, err error) opener {
	return opener{name: name, open: func(context.Context, []byte) (pageSource, error) {
		return src, err
	}}
}

func TestExtract_TwoPagesKeepOrder(t *testing.T) {
	src := &fakeSource{pages: []string{"First page text", "Second page text"}}
	e := newTestExtractor(staticOpener("fake", src, nil))

	doc, err := e.Extract(context.Background(), []byte("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "First page text"+" "+"\n"+"Second page text"+" "+"\n", doc.Text())
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.Equal(t, 2, doc.Pages[1].Number)
	assert.Equal(t, "fake", doc.Backend)
}

func TestExtract_InvalidPayload(t *testing.T) {
	e := newTestExtractor(staticOpener("fake", &fakeSource{pages: []string{"x"}}, nil))
	e.maxFileSize = 4

	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = e.Extract(context.Background(), []byte("too large"))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestExtract_NoTextIsTypedFailure(t *testing.T) {
	e := newTestExtractor(staticOpener("fake", &fakeSource{pages: []string{"", "  "}}, nil))

	_, err := e.Extract(context.Background(), []byte("%PDF"))
	assert.ErrorIs(t, err, apperror.ErrExtractionFailed)
}

func TestExtract_FallsBackToNextBackend(t *testing.T) {
	e := newTestExtractor(
		staticOpener("broken", nil, errors.New("bad xref")),
		staticOpener("backup", &fakeSource{pages: []string{"recovered"}}, nil),
	)

	doc, err := e.Extract(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "backup", doc.Backend)
	assert.Equal(t, "recovered \n", doc.Text())
}

func TestExtract_GarbageWithPDFCPU(t *testing.T) {
	e := New(config.ExtractConfig{}, t.TempDir(), nil, logger.NewNop())

	_, err := e.Extract(context.Background(), []byte("definitely not a pdf"))
	assert.ErrorIs(t, err, apperror.ErrExtractionFailed)
}

func TestExtract_PdftotextFallback(t *testing.T) {
	exec := &fakeExecutor{out: "Alpha  one\n\fBeta two\f"}
	e := New(config.ExtractConfig{PdftotextPath: "pdftotext"}, t.TempDir(), exec, logger.NewNop())

	doc, err := e.Extract(context.Background(), []byte("definitely not a pdf"))
	require.NoError(t, err)

	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, "pdftotext", exec.args[0])
	assert.Equal(t, backendPdftotext, doc.Backend)
	assert.Equal(t, "Alpha one \nBeta two \n", doc.Text())
}

func TestPages_IsLazy(t *testing.T) {
	src := &fakeSource{pages: []string{"one", "two", "three"}}
	e := newTestExtractor(staticOpener("fake", src, nil))

	for page, err := range e.Pages(context.Background(), []byte("%PDF")) {
		require.NoError(t, err)
		assert.Equal(t, "one", page.Text)
		break
	}
	assert.Equal(t, 1, src.reads)
}

func TestPages_BlankDocumentFallsBack(t *testing.T) {
	e := newTestExtractor(
		staticOpener("blank", &fakeSource{pages: []string{"", " "}}, nil),
		staticOpener("backup", &fakeSource{pages: []string{"recovered"}}, nil),
	)

	var texts []string
	for page, err := range e.Pages(context.Background(), []byte("%PDF")) {
		require.NoError(t, err)
		texts = append(texts, page.Text)
	}
	assert.Equal(t, []string{"recovered"}, texts)
}

func TestPages_KeepsLeadingBlankPages(t *testing.T) {
	e := newTestExtractor(staticOpener("fake", &fakeSource{pages: []string{"", "cover", ""}}, nil))

	var numbers []int
	for page, err := range e.Pages(context.Background(), []byte("%PDF")) {
		require.NoError(t, err)
		numbers = append(numbers, page.Number)
	}
	assert.Equal(t, []int{1, 2, 3}, numbers)
}

func TestPages_NoTextIsTypedFailure(t *testing.T) {
	e := newTestExtractor(
		staticOpener("blank", &fakeSource{pages: []string{"", " "}}, nil),
		staticOpener("broken", nil, errors.New("bad xref")),
	)

	var pages int
	var gotErr error
	for _, err := range e.Pages(context.Background(), []byte("%PDF")) {
		if err != nil {
			gotErr = err
			continue
		}
		pages++
	}
	assert.Zero(t, pages)
	assert.ErrorIs(t, gotErr, apperror.ErrExtractionFailed)
}

func TestPages_StopsOnCancelledContext(t *testing.T) {
	e := newTestExtractor(staticOpener("fake", &fakeSource{pages: []string{"one"}}, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var gotErr error
	for _, err := range e.Pages(ctx, []byte("%PDF")) {
		gotErr = err
	}
	assert.ErrorIs(t, gotErr, context.Canceled)
}

func TestExtract_RealPDF(t *testing.T) {
	e := New(config.ExtractConfig{}, t.TempDir(), nil, logger.NewNop())

	doc, err := e.Extract(context.Background(), buildTextPDF("Hello World from page one", "Second page here"))
	require.NoError(t, err)

	assert.Equal(t, backendPDFCPU, doc.Backend)
	assert.Equal(t, "Hello World from page one \nSecond page here \n", doc.Text())
}

func TestTextItems(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "simple Tj",
			stream: "BT\n/F1 12 Tf\n72 720 Td\n(Hello World) Tj\nET",
			want:   "Hello World",
		},
		{
			name:   "TJ with kerning gap",
			stream: "BT [(Wor) -30 (ld) -300 (again)] TJ ET",
			want:   "World again",
		},
		{
			name:   "quote operator and escapes",
			stream: "BT (first) Tj (next \\(line\\)) ' ET",
			want:   "first next (line)",
		},
		{
			name:   "hex string",
			stream: "BT <48656C6C6F> Tj ET",
			want:   "Hello",
		},
		{
			name:   "octal escape",
			stream: "BT (a\\040b) Tj ET",
			want:   "a b",
		},
		{
			name:   "dictionaries ignored",
			stream: "/P <</MCID 0>> BDC BT (marked) Tj ET EMC",
			want:   "marked",
		},
		{
			name:   "no text",
			stream: "q 1 0 0 1 0 0 cm Q",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinItems(textItems([]byte(tt.stream))))
		})
	}
}

func TestSplitFormFeed(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitFormFeed("a\n\fb\n  c\f"))
	assert.Equal(t, []string{"only"}, splitFormFeed("only"))
}

// buildTextPDF writes a minimal PDF with one Helvetica text line per page.
func buildTextPDF(pages ...string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	n := len(pages)
	total := 3 + 2*n // catalog, pages, font, then page+content per page
	offsets := make([]int, total+1)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), n)

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for i, text := range pages {
		pageObj, contentObj := 4+2*i, 5+2*i
		stream := "BT\n/F1 12 Tf\n72 720 Td\n(" + text + ") Tj\nET"

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n", pageObj, contentObj)

		offsets[contentObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(stream), stream)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", total+1)
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total+1, xref)

	return []byte(b.String())
}
