package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPage(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		chunkSize int
		want      []string
	}{
		{
			name:      "empty page",
			input:     "  \n\n ",
			chunkSize: 100,
			want:      nil,
		},
		{
			name:      "paragraphs merge while they fit",
			input:     "first para\n\nsecond para",
			chunkSize: 100,
			want:      []string{"first para\n\nsecond para"},
		},
		{
			name:      "paragraphs split when too long together",
			input:     "aaaaaaaaaa\n\nbbbbbbbbbb",
			chunkSize: 15,
			want:      []string{"aaaaaaaaaa", "bbbbbbbbbb"},
		},
		{
			name:      "windows respect rune boundaries",
			input:     "éééééé",
			chunkSize: 4,
			want:      []string{"éééé", "ééé"},
		},
		{
			name:      "crlf line endings",
			input:     "one\r\n\r\ntwo",
			chunkSize: 4,
			want:      []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewChunker(Options{ChunkSize: tt.chunkSize, Overlap: 1})
			require.NoError(t, err)

			chunks := c.SplitPage(tt.input, "docs/report.pdf", 3)
			var got []string
			for _, ch := range chunks {
				got = append(got, ch.Content)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitPage_Fields(t *testing.T) {
	c, err := NewChunker(Options{ChunkSize: 20, Overlap: 5})
	require.NoError(t, err)

	text := strings.Repeat("word ", 12) + "\n\nshort tail"
	chunks := c.SplitPage(text, "docs/report.pdf", 2)
	require.NotEmpty(t, chunks)

	for i, ch := range chunks {
		assert.Equal(t, "docs/report.pdf", ch.Source)
		assert.Equal(t, 2, ch.Page)
		assert.Equal(t, i, ch.Index)
		assert.Equal(t, ChunkID("docs/report.pdf", 2, i), ch.ID)
		assert.LessOrEqual(t, len([]rune(ch.Content)), 20)
		assert.NotEmpty(t, ch.Content)
	}
	assert.Equal(t, "short tail", chunks[len(chunks)-1].Content)
}

func TestChunkID(t *testing.T) {
	assert.Equal(t, "report_pdf-d1d6fb89-p3-0", ChunkID("/data/in/report.pdf", 3, 0))
	assert.Equal(t, "my_file_pdf-58147343-p1-2", ChunkID("my file.pdf", 1, 2))
	assert.Equal(t, "doc-p1-0", ChunkID("", 1, 0))
	assert.Equal(t, ChunkID("a/report.pdf", 1, 0), ChunkID("a/./report.pdf", 1, 0))
}

func TestChunkID_SameNameDifferentDirectories(t *testing.T) {
	c, err := NewChunker(DefaultOptions())
	require.NoError(t, err)

	seen := map[string]string{}
	for _, source := range []string{"a/report.pdf", "b/report.pdf", "c/report_pdf"} {
		chunks := c.SplitPage("Quarterly figures.", source, 1)
		require.Len(t, chunks, 1)
		if prev, ok := seen[chunks[0].ID]; ok {
			t.Fatalf("%s and %s share chunk ID %s", prev, source, chunks[0].ID)
		}
		seen[chunks[0].ID] = source
	}
	assert.Len(t, seen, 3)
}

func TestNewChunker_InvalidOptions(t *testing.T) {
	_, err := NewChunker(Options{ChunkSize: 0})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidChunkSize, err)

	c, err := NewChunker(Options{ChunkSize: 8, Overlap: 8})
	require.NoError(t, err)
	assert.Equal(t, 2, c.opts.Overlap)
}
