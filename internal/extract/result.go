package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization of a Result.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want json or yaml)", s)
	}
}

// Result is the envelope printed by the extract command.
type Result struct {
	Success bool `json:"success" yaml:"success"`
	// Error is nil on success so that it serializes as null.
	Error           *string  `json:"error" yaml:"error"`
	Text            string   `json:"text" yaml:"text"`
	Metadata        Metadata `json:"metadata" yaml:"metadata"`
	Pages           []Page   `json:"pages" yaml:"pages"`
	TotalCharacters int      `json:"totalCharacters" yaml:"totalCharacters"`
}

// Metadata is the document-level information copied from the PDF.
type Metadata struct {
	Title            string `json:"title" yaml:"title"`
	Author           string `json:"author" yaml:"author"`
	Subject          string `json:"subject" yaml:"subject"`
	Creator          string `json:"creator" yaml:"creator"`
	Producer         string `json:"producer" yaml:"producer"`
	CreationDate     string `json:"creationDate" yaml:"creationDate"`
	ModDate          string `json:"modDate" yaml:"modDate"`
	PageCount        int    `json:"pageCount" yaml:"pageCount"`
	FileSize         int64  `json:"fileSize" yaml:"fileSize"`
	ExtractionMethod string `json:"extractionMethod" yaml:"extractionMethod"`
	ExtractionTime   string `json:"extractionTime" yaml:"extractionTime"`
}

// Page is the cleaned text of one page.
type Page struct {
	PageNumber int    `json:"pageNumber" yaml:"pageNumber"`
	Text       string `json:"text" yaml:"text"`
	CharCount  int    `json:"charCount" yaml:"charCount"`
}

// IsZero reports whether no metadata was collected. Failed extractions carry
// zero metadata, which serializes as an empty object.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// MarshalJSON implements json.Marshaler.
func (m Metadata) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("{}"), nil
	}
	type plain Metadata
	return json.Marshal(plain(m))
}

// MarshalYAML implements yaml.Marshaler.
func (m Metadata) MarshalYAML() (interface{}, error) {
	if m.IsZero() {
		return map[string]string{}, nil
	}
	type plain Metadata
	return plain(m), nil
}

// Failure builds the envelope for a failed extraction. Text, metadata and
// pages are left empty.
func Failure(err error) *Result {
	msg := err.Error()
	return &Result{
		Success: false,
		Error:   &msg,
		Pages:   []Page{},
	}
}

// Err returns the failure message as an error, or nil on success.
func (r *Result) Err() error {
	if r.Success || r.Error == nil {
		return nil
	}
	return fmt.Errorf("%s", *r.Error)
}

// Encode writes r to w in the given format. indent is the number of spaces
// per nesting level; zero produces compact JSON.
func Encode(w io.Writer, r *Result, format Format, indent int) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent(indent)
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", indent))
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
