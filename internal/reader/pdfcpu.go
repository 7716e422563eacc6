package reader

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PdfcpuBackend reads PDFs with pdfcpu. pdfcpu has no text layout engine, so
// page text is recovered from the literal strings shown by the page content
// stream's text operators. Hex-encoded (CID font) strings are not decoded.
type PdfcpuBackend struct{}

// Name implements Backend.
func (PdfcpuBackend) Name() string { return "pdfcpu" }

// Open implements Backend.
func (PdfcpuBackend) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &pdfcpuDocument{file: f, ctx: ctx}, nil
}

type pdfcpuDocument struct {
	file *os.File
	ctx  *model.Context
}

func (d *pdfcpuDocument) NumPage() int {
	return d.ctx.PageCount
}

func (d *pdfcpuDocument) PageText(i int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(d.ctx, i+1)
	if err != nil {
		return "", fmt.Errorf("extract content of page %d: %w", i+1, err)
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read content of page %d: %w", i+1, err)
	}
	return contentStreamText(data), nil
}

func (d *pdfcpuDocument) Metadata() map[string]string {
	xt := d.ctx.XRefTable
	meta := make(map[string]string, 7)
	set := func(key, value string) {
		if value != "" {
			meta[key] = value
		}
	}
	set(KeyTitle, xt.Title)
	set(KeyAuthor, xt.Author)
	set(KeySubject, xt.Subject)
	set(KeyCreator, xt.Creator)
	set(KeyProducer, xt.Producer)
	set(KeyCreationDate, xt.CreationDate)
	set(KeyModDate, xt.ModDate)
	return meta
}

func (d *pdfcpuDocument) Close() error {
	return d.file.Close()
}
