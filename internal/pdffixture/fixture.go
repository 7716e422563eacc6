// Package pdffixture writes small, valid PDF files for tests.
package pdffixture

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Document describes the generated PDF. Each page shows its text in one
// Helvetica text object.
type Document struct {
	Title  string
	Author string
	Pages  []string
}

// Write renders doc as a PDF with a correct cross-reference table and writes
// it to path.
func Write(path string, doc Document) error {
	return os.WriteFile(path, Build(doc), 0o644)
}

// Build renders doc as PDF bytes.
func Build(doc Document) []byte {
	n := len(doc.Pages)
	// 1 catalog, 2 pages, 3 font, 4 info, then a page and a content stream
	// object per page.
	objects := make([]string, 4+2*n)

	kids := make([]string, n)
	for i := range doc.Pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}

	objects[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n)
	objects[2] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"
	objects[3] = fmt.Sprintf("<< /Title (%s) /Author (%s) >>", escape(doc.Title), escape(doc.Author))

	for i, text := range doc.Pages {
		pageNum, contentNum := 5+2*i, 6+2*i
		objects[pageNum-1] = fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentNum)
		stream := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", escape(text))
		objects[contentNum-1] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}
