package display

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)

	SetVerbose(false)
	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	assert.True(t, IsVerbose())
	Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestHelpers_WriteToOutput(t *testing.T) {
	defer SetOutput(os.Stderr)

	var buf bytes.Buffer
	SetOutput(&buf)

	Step(1, 3, "Extracting report.pdf")
	StepDetail("4 pages, 812 characters")
	KeyValue("Backend", "pdfcpu", BrightMagenta)
	Warn("skipping broken.pdf")
	ErrorMsg("boom")
	Success("indexed 2 PDF(s)")
	Info("3 page chunk(s)")

	out := buf.String()
	assert.Contains(t, out, "[1/3]")
	assert.Contains(t, out, "Extracting report.pdf")
	assert.Contains(t, out, "4 pages, 812 characters")
	assert.Contains(t, out, "Backend")
	assert.Contains(t, out, BrightMagenta+"pdfcpu"+Reset)
	assert.Contains(t, out, "skipping broken.pdf")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "indexed 2 PDF(s)")
	assert.Contains(t, out, "3 page chunk(s)")
}

func TestPrintDocumentInfo(t *testing.T) {
	var buf bytes.Buffer
	PrintDocumentInfo(&buf, DocumentInfo{
		Path:            "report.pdf",
		Title:           "Quarterly Report",
		PageCount:       12,
		FileSize:        4096,
		BlankPages:      1,
		TotalCharacters: 2500,
		Backend:         "ledongthuc",
		Policy:          "latin1",
	})

	out := buf.String()
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "Quarterly Report")
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "2500 (2.5K)")
	assert.Contains(t, out, "Blank Pages")
	assert.Contains(t, out, "4096 (4.1K) bytes")
}

func TestPrintIndexSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintIndexSummary(&buf, IndexSummary{Documents: 2, Chunks: 40, Quads: 18, VectorDir: "v", GraphDir: "g"})

	out := buf.String()
	assert.Contains(t, out, "Documents")
	assert.Contains(t, out, "40")
	assert.NotContains(t, out, "Failed")
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "999", formatCount(999))
	assert.Equal(t, "1500 (1.5K)", formatCount(1500))
	assert.Equal(t, "2000000 (2.0M)", formatCount(2_000_000))
}

func TestElapsed(t *testing.T) {
	assert.Equal(t, "500μs", Elapsed(500*time.Microsecond))
	assert.Equal(t, "42ms", Elapsed(42*time.Millisecond))
	assert.Equal(t, "1.5s", Elapsed(1500*time.Millisecond))
}
