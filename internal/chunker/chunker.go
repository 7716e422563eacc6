package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidChunkSize is returned when an invalid chunk size is specified.
var ErrInvalidChunkSize = errors.New("chunk size must be greater than 0")

// Chunk is a slice of one page's cleaned text.
type Chunk struct {
	// ID is unique within an index, e.g. "report_pdf-p3-1"
	ID string
	// Content is the chunk text
	Content string
	// Source is the originating PDF path
	Source string
	// Page is the 1-based page the chunk came from
	Page int
	// Index is the position of the chunk within its page
	Index int
}

// Options configures the chunking behavior.
type Options struct {
	// ChunkSize is the maximum number of characters per chunk
	ChunkSize int
	// Overlap is the number of characters repeated between window chunks
	Overlap int
}

// DefaultOptions returns sensible defaults for chunking.
func DefaultOptions() Options {
	return Options{
		ChunkSize: 1000,
		Overlap:   200,
	}
}

// Chunker splits page text into chunks for the vector index.
type Chunker struct {
	opts Options
}

// NewChunker creates a new Chunker with the given options.
func NewChunker(opts Options) (*Chunker, error) {
	if opts.ChunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}
	if opts.Overlap < 0 {
		opts.Overlap = 0
	}
	if opts.Overlap >= opts.ChunkSize {
		opts.Overlap = opts.ChunkSize / 4
	}
	return &Chunker{opts: opts}, nil
}

// SplitPage splits one page into chunks, breaking at paragraph boundaries
// where possible. Paragraphs longer than the chunk size are cut into
// overlapping windows.
func (c *Chunker) SplitPage(text, source string, page int) []Chunk {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var pieces []string
	var builder strings.Builder
	flush := func() {
		if content := strings.TrimSpace(builder.String()); content != "" {
			pieces = append(pieces, content)
		}
		builder.Reset()
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if runeLen(para) > c.opts.ChunkSize {
			flush()
			pieces = append(pieces, c.windows(para)...)
			continue
		}
		if runeLen(builder.String())+runeLen(para)+2 > c.opts.ChunkSize {
			flush()
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(para)
	}
	flush()

	chunks := make([]Chunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = Chunk{
			ID:      ChunkID(source, page, i),
			Content: content,
			Source:  source,
			Page:    page,
			Index:   i,
		}
	}
	return chunks
}

// windows cuts text into overlapping rune windows of ChunkSize.
func (c *Chunker) windows(text string) []string {
	runes := []rune(text)
	total := len(runes)
	step := c.opts.ChunkSize - c.opts.Overlap

	var out []string
	for start := 0; start < total; start += step {
		end := start + c.opts.ChunkSize
		if end > total {
			end = total
		}
		if content := strings.TrimSpace(string(runes[start:end])); content != "" {
			out = append(out, content)
		}
		if end == total {
			break
		}
	}
	return out
}

// ChunkID builds a stable identifier from the source file name, the page and
// the chunk's position on the page. A short hash of the cleaned source path
// keeps equally named files in different directories apart.
func ChunkID(source string, page, idx int) string {
	if source == "" {
		return fmt.Sprintf("doc-p%d-%d", page, idx)
	}
	clean := filepath.Clean(source)
	sum := sha256.Sum256([]byte(clean))
	r := strings.NewReplacer("/", "_", "\\", "_", ".", "_", " ", "_")
	return fmt.Sprintf("%s-%s-p%d-%d", r.Replace(filepath.Base(clean)), hex.EncodeToString(sum[:4]), page, idx)
}

func runeLen(s string) int {
	return len([]rune(s))
}
