package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownBackend is returned when a backend name is not registered.
var ErrUnknownBackend = errors.New("unknown PDF backend")

// DefaultBackend is the backend used when none is configured.
const DefaultBackend = "ledongthuc"

// Metadata keys shared by all backends. They match the field names of the
// JSON output.
const (
	KeyTitle        = "title"
	KeyAuthor       = "author"
	KeySubject      = "subject"
	KeyCreator      = "creator"
	KeyProducer     = "producer"
	KeyCreationDate = "creationDate"
	KeyModDate      = "modDate"
)

// Document is an open PDF. Callers must Close it.
type Document interface {
	// NumPage returns the number of pages.
	NumPage() int
	// PageText returns the raw text of the page at the 0-based index i.
	PageText(i int) (string, error)
	// Metadata returns the document information dictionary. Keys follow the
	// Key* constants; absent entries are simply missing.
	Metadata() map[string]string
	// Close releases the underlying file.
	Close() error
}

// Backend opens PDF files with one particular library.
type Backend interface {
	// Name identifies the backend in configuration and in output metadata.
	Name() string
	// Open parses the file at path.
	Open(path string) (Document, error)
}

var backends = map[string]func() Backend{
	"ledongthuc": func() Backend { return LedongthucBackend{} },
	"pdfcpu":     func() Backend { return PdfcpuBackend{} },
	"mupdf":      func() Backend { return MuPDFBackend{} },
}

// NewBackend returns the backend registered under name. The empty name
// selects DefaultBackend.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultBackend
	}
	mk, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
	}
	return mk(), nil
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListPDFs returns the paths of all .pdf files directly inside dir, sorted by
// name. Subdirectories are not descended into.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ".pdf" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// ExpandPaths resolves a mix of file and directory arguments into PDF paths.
// Directories contribute their PDFs; files are passed through unchanged.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := ListPDFs(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}
