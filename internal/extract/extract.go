// Package extract turns a PDF file into cleaned page text and document
// metadata. The PDF library itself is reached through reader.Backend; this
// package owns the file check, the document lifecycle, page assembly and the
// output envelope.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/akashicode/pdfclean/internal/normalize"
	"github.com/akashicode/pdfclean/internal/reader"
)

// ErrFileNotFound is returned when the input path does not exist. The backend
// is never invoked in that case.
var ErrFileNotFound = errors.New("file not found")

// ErrNoText is returned by Text when no page produced non-blank text.
var ErrNoText = errors.New("no text extracted from PDF")

// ErrNilBackend is returned by New when no backend is given.
var ErrNilBackend = errors.New("pdf backend is nil")

// Page markers used by the two output styles. %d is replaced by the 1-based
// page number.
const (
	JSONMarker = "=== PAGE %d ==="
	TextMarker = "--- Page %d ---"
)

// ParseError reports a failure inside the PDF library while opening or reading
// a document.
type ParseError struct {
	Path    string
	Backend string
	Err     error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Options configures an Extractor.
type Options struct {
	// Normalizer cleans page text. Nil uses the Latin-1 policy.
	Normalizer *normalize.Normalizer
	// Marker heads each page in the assembled text. Empty uses JSONMarker.
	Marker string
	// SkipBlank drops pages with blank text from the assembled text. Pages
	// are always listed individually.
	SkipBlank bool
	// Untrimmed keeps leading and trailing whitespace of the assembled text.
	// Plain text output keeps it; the envelope trims it.
	Untrimmed bool
	// Now stamps the extraction time. Nil uses time.Now.
	Now func() time.Time
}

// Extractor runs the extraction for one backend and configuration.
type Extractor struct {
	backend    reader.Backend
	normalizer *normalize.Normalizer
	marker     string
	skipBlank  bool
	untrimmed  bool
	now        func() time.Time
}

// New creates an Extractor.
func New(backend reader.Backend, opts Options) (*Extractor, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if opts.Normalizer == nil {
		opts.Normalizer = normalize.New(normalize.PolicyLatin1)
	}
	if opts.Marker == "" {
		opts.Marker = JSONMarker
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Extractor{
		backend:    backend,
		normalizer: opts.Normalizer,
		marker:     opts.Marker,
		skipBlank:  opts.SkipBlank,
		untrimmed:  opts.Untrimmed,
		now:        opts.Now,
	}, nil
}

// Backend returns the backend the Extractor reads with.
func (e *Extractor) Backend() reader.Backend {
	return e.backend
}

// Extract reads the PDF at path. The returned Result is never nil: on error it
// is the failure envelope carrying the error message.
func (e *Extractor) Extract(ctx context.Context, path string) (*Result, error) {
	res, err := e.extract(ctx, path)
	if err != nil {
		return Failure(err), err
	}
	return res, nil
}

// Text reads the PDF at path and returns only the assembled, cleaned text.
func (e *Extractor) Text(ctx context.Context, path string) (string, error) {
	res, err := e.extract(ctx, path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(res.Text) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoText, path)
	}
	return res.Text, nil
}

func (e *Extractor) extract(ctx context.Context, path string) (res *Result, err error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, e.parseError(path, statErr)
	}

	// Some PDF libraries panic on malformed input; surface that as a parse
	// failure. Deferred first so it runs after the document is closed.
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = e.parseError(path, fmt.Errorf("panic while reading PDF: %v", r))
		}
	}()

	doc, err := e.backend.Open(path)
	if err != nil {
		return nil, e.parseError(path, err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]Page, 0, n)
	total := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := doc.PageText(i)
		if err != nil {
			return nil, e.parseError(path, err)
		}
		text := e.normalizer.Normalize(raw)
		count := utf8.RuneCountInString(text)
		pages = append(pages, Page{
			PageNumber: i + 1,
			Text:       text,
			CharCount:  count,
		})
		total += count
	}

	text := Assemble(pages, e.marker, e.skipBlank)
	if !e.untrimmed {
		text = strings.TrimSpace(text)
	}

	meta := e.metadata(doc.Metadata(), n)
	meta.FileSize = info.Size()

	return &Result{
		Success:         true,
		Text:            text,
		Metadata:        meta,
		Pages:           pages,
		TotalCharacters: total,
	}, nil
}

func (e *Extractor) metadata(info map[string]string, pageCount int) Metadata {
	return Metadata{
		Title:            info[reader.KeyTitle],
		Author:           info[reader.KeyAuthor],
		Subject:          info[reader.KeySubject],
		Creator:          info[reader.KeyCreator],
		Producer:         info[reader.KeyProducer],
		CreationDate:     info[reader.KeyCreationDate],
		ModDate:          info[reader.KeyModDate],
		PageCount:        pageCount,
		ExtractionMethod: e.backend.Name(),
		ExtractionTime:   e.now().Format(time.RFC3339),
	}
}

func (e *Extractor) parseError(path string, err error) error {
	return &ParseError{Path: path, Backend: e.backend.Name(), Err: err}
}

// Assemble joins pages into one text. Each page is headed by marker, with
// %d replaced by the page number, and pages are separated by a blank line.
// An empty marker joins the bare page texts.
func Assemble(pages []Page, marker string, skipBlank bool) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if skipBlank && strings.TrimSpace(p.Text) == "" {
			continue
		}
		if marker == "" {
			parts = append(parts, p.Text)
			continue
		}
		parts = append(parts, FormatMarker(marker, p.PageNumber)+"\n"+p.Text)
	}
	return strings.Join(parts, "\n\n")
}

// FormatMarker substitutes the first %d in marker with n.
func FormatMarker(marker string, n int) string {
	return strings.Replace(marker, "%d", strconv.Itoa(n), 1)
}
