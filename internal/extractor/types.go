package extractor

import "strings"

// pageTerminator ends every page fragment.
const pageTerminator = " \n"

// Page is the text of a single page. Number is 1-based.
type Page struct {
	Number int
	Text   string
}

// Fragment returns the page text in its concatenation form.
func (p Page) Fragment() string {
	return p.Text + pageTerminator
}

func (p Page) blank() bool {
	return strings.TrimSpace(p.Text) == ""
}

// Document is the result of extracting a PDF.
type Document struct {
	Pages   []Page
	Backend string
}

// Text concatenates the page fragments in page order.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		sb.WriteString(p.Fragment())
	}
	return sb.String()
}

// empty reports whether no page carries any text.
func (d *Document) empty() bool {
	for _, p := range d.Pages {
		if !p.blank() {
			return false
		}
	}
	return true
}
