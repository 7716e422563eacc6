package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LedongthucBackend reads PDFs with github.com/ledongthuc/pdf. It is pure Go
// and extracts the embedded text layer only.
type LedongthucBackend struct{}

// Name implements Backend.
func (LedongthucBackend) Name() string { return "ledongthuc" }

// Open implements Backend.
func (LedongthucBackend) Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &ledongthucDocument{
		file:  f,
		r:     r,
		fonts: make(map[string]*pdf.Font),
	}, nil
}

type ledongthucDocument struct {
	file  *os.File
	r     *pdf.Reader
	fonts map[string]*pdf.Font
}

func (d *ledongthucDocument) NumPage() int {
	return d.r.NumPage()
}

func (d *ledongthucDocument) PageText(i int) (string, error) {
	p := d.r.Page(i + 1)
	if p.V.IsNull() {
		return "", nil
	}

	// Fonts are shared across pages; cache them so each is decoded once.
	for _, name := range p.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			font := p.Font(name)
			d.fonts[name] = &font
		}
	}

	text, err := p.GetPlainText(d.fonts)
	if err != nil {
		return "", fmt.Errorf("read pdf page %d: %w", i+1, err)
	}
	// GetPlainText starts a new line at each text position change, including
	// the first one. Line breaks at the page edges are layout, not content.
	return strings.Trim(text, "\r\n"), nil
}

var infoKeys = map[string]string{
	"Title":        KeyTitle,
	"Author":       KeyAuthor,
	"Subject":      KeySubject,
	"Creator":      KeyCreator,
	"Producer":     KeyProducer,
	"CreationDate": KeyCreationDate,
	"ModDate":      KeyModDate,
}

func (d *ledongthucDocument) Metadata() map[string]string {
	info := d.r.Trailer().Key("Info")
	meta := make(map[string]string, len(infoKeys))
	if info.IsNull() {
		return meta
	}
	for pdfKey, key := range infoKeys {
		if v := info.Key(pdfKey); !v.IsNull() {
			meta[key] = v.Text()
		}
	}
	return meta
}

func (d *ledongthucDocument) Close() error {
	return d.file.Close()
}
