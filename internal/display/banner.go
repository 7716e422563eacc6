package display

import (
	"fmt"
	"io"
	"strings"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	italic = "\033[3m"

	red     = "\033[31m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	blue    = "\033[34m"
	magenta = "\033[35m"
	cyan    = "\033[36m"
	white   = "\033[37m"

	brightRed     = "\033[91m"
	brightGreen   = "\033[92m"
	brightYellow  = "\033[93m"
	brightBlue    = "\033[94m"
	brightMagenta = "\033[95m"
	brightCyan    = "\033[96m"
	brightWhite   = "\033[97m"
)

// DocumentInfo holds everything the info command shows about one PDF.
type DocumentInfo struct {
	Path string

	// Document information dictionary
	Title        string
	Author       string
	Subject      string
	Creator      string
	Producer     string
	CreationDate string
	ModDate      string

	// Extraction stats
	PageCount       int
	FileSize        int64
	BlankPages      int
	TotalCharacters int
	Backend         string
	Policy          string
}

// IndexSummary holds the totals printed after an index run.
type IndexSummary struct {
	Documents int
	Failed    int
	Chunks    int
	Quads     int64
	VectorDir string
	GraphDir  string
}

// PrintDocumentInfo prints a colorful summary card for a PDF.
func PrintDocumentInfo(w io.Writer, info DocumentInfo) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s%s📄 %s%s\n", bold, brightCyan, info.Path, reset)
	fmt.Fprintf(w, "  %s%s━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━%s\n", dim, cyan, reset)
	fmt.Fprintln(w)

	printSectionHeader(w, "📝 Document")
	printKV(w, "Title", orUnset(info.Title), brightWhite)
	printKV(w, "Author", orUnset(info.Author), white)
	if info.Subject != "" {
		subject := info.Subject
		if len(subject) > 60 {
			subject = subject[:57] + "..."
		}
		printKV(w, "Subject", subject, white)
	}
	printKV(w, "Creator", orUnset(info.Creator), dim+white)
	printKV(w, "Producer", orUnset(info.Producer), dim+white)
	printKV(w, "Created", orUnset(info.CreationDate), dim+white)
	printKV(w, "Modified", orUnset(info.ModDate), dim+white)
	fmt.Fprintln(w)

	printSectionHeader(w, "📊 Text")
	printKVColored(w, "Pages", formatCount(info.PageCount), brightGreen)
	printKV(w, "File Size", formatCount(int(info.FileSize))+" bytes", white)
	if info.BlankPages > 0 {
		printKVColored(w, "Blank Pages", formatCount(info.BlankPages), brightYellow)
	}
	printKVColored(w, "Characters", formatCount(info.TotalCharacters), brightGreen)
	printKV(w, "Backend", info.Backend, brightMagenta)
	printKV(w, "Policy", info.Policy, brightMagenta)
	fmt.Fprintln(w)
}

// PrintIndexSummary prints the totals of an index run.
func PrintIndexSummary(w io.Writer, s IndexSummary) {
	fmt.Fprintln(w)
	printSectionHeader(w, "📚 Index")
	printKVColored(w, "Documents", formatCount(s.Documents), brightGreen)
	if s.Failed > 0 {
		printKVColored(w, "Failed", formatCount(s.Failed), brightRed)
	}
	printKVColored(w, "Chunks", formatCount(s.Chunks), brightGreen)
	printKVColored(w, "Graph Quads", formatCount(int(s.Quads)), brightGreen)
	printKV(w, "Vectors", s.VectorDir, dim+white)
	printKV(w, "Graph", s.GraphDir, dim+white)
	fmt.Fprintln(w)
}

func printSectionHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "  %s%s%s%s\n", bold, brightYellow, title, reset)
}

func printKV(w io.Writer, key, value, valueColor string) {
	fmt.Fprintf(w, "    %s%s%s  %s%s%s\n", dim, padRight(key, 18), reset, valueColor, value, reset)
}

func printKVColored(w io.Writer, key, value, valueColor string) {
	fmt.Fprintf(w, "    %s%s%s  %s%s%s%s\n", dim, padRight(key, 18), reset, bold, valueColor, value, reset)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func formatCount(n int) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%d (%0.1fM)", n, float64(n)/1_000_000)
	}
	if n >= 1_000 {
		return fmt.Sprintf("%d (%0.1fK)", n, float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
