package reader

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// MuPDFBackend reads PDFs with MuPDF through go-fitz. MuPDF produces the
// best text layout of the three backends and reports metadata under the same
// keys as the JSON output.
type MuPDFBackend struct{}

// Name implements Backend.
func (MuPDFBackend) Name() string { return "mupdf" }

// Open implements Backend.
func (MuPDFBackend) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &mupdfDocument{doc: doc}, nil
}

type mupdfDocument struct {
	doc *fitz.Document
}

func (d *mupdfDocument) NumPage() int {
	return d.doc.NumPage()
}

func (d *mupdfDocument) PageText(i int) (string, error) {
	text, err := d.doc.Text(i)
	if err != nil {
		return "", fmt.Errorf("read page %d: %w", i+1, err)
	}
	return text, nil
}

func (d *mupdfDocument) Metadata() map[string]string {
	meta := make(map[string]string, 7)
	for k, v := range d.doc.Metadata() {
		switch k {
		case KeyTitle, KeyAuthor, KeySubject, KeyCreator, KeyProducer, KeyCreationDate, KeyModDate:
			if v != "" {
				meta[k] = v
			}
		}
	}
	return meta
}

func (d *mupdfDocument) Close() error {
	return d.doc.Close()
}
