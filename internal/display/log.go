package display

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ────────────────────────────────────────────────────────────
// Exported color constants for use outside the display package
// ────────────────────────────────────────────────────────────

const (
	Reset = reset
	Bold  = bold
	Dim   = dim

	BrightGreen   = brightGreen
	BrightMagenta = brightMagenta
	BrightCyan    = brightCyan
)

// ────────────────────────────────────────────────────────────
// Output routing. Diagnostics go to stderr so that stdout only
// ever carries the extracted payload.
// ────────────────────────────────────────────────────────────

var (
	mu      sync.RWMutex
	out     io.Writer = os.Stderr
	verbose bool
)

// SetOutput redirects all log helpers. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether Debug output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

func printf(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(out, format, args...)
}

// ────────────────────────────────────────────────────────────
// Log-level helpers (colored prefixes for CLI output)
// ────────────────────────────────────────────────────────────

// Step prints a pipeline step like "  [1/3] Extracting report.pdf..."
func Step(step, total int, msg string) {
	printf("  %s%s[%d/%d]%s %s%s%s\n",
		bold, brightCyan, step, total, reset,
		white, msg, reset,
	)
}

// StepDetail prints an indented detail line under a step.
func StepDetail(msg string) {
	printf("        %s%s%s\n", dim+white, msg, reset)
}

// StepResult prints a success result for a step with a highlighted value.
func StepResult(label string, value interface{}) {
	printf("        %s%s%s %s%v%s\n",
		dim, label, reset,
		bold+brightGreen, value, reset,
	)
}

// StepWarn prints a warning detail under a step.
func StepWarn(msg string) {
	printf("        %s%s⚠ %s%s\n", yellow, bold, msg, reset)
}

// Info prints a general info message.
func Info(msg string) {
	printf("  %s%sℹ%s %s\n", brightBlue, bold, reset, msg)
}

// Success prints a green success message.
func Success(msg string) {
	printf("  %s%s✓%s %s\n", brightGreen, bold, reset, msg)
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	printf("  %s%s⚠%s %s%s%s\n", brightYellow, bold, reset, yellow, msg, reset)
}

// ErrorMsg prints a red error message.
func ErrorMsg(msg string) {
	printf("  %s%s✗%s %s%s%s\n", brightRed, bold, reset, red, msg, reset)
}

// Debug prints a dimmed message when verbose mode is enabled.
func Debug(format string, args ...interface{}) {
	if !IsVerbose() {
		return
	}
	printf("  %s[debug] %s%s\n", dim, fmt.Sprintf(format, args...), reset)
}

// Header prints a section header line.
func Header(msg string) {
	printf("\n  %s%s%s%s\n", bold, brightCyan, msg, reset)
	printf("  %s%s%s%s\n", dim, cyan, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━", reset)
}

// KeyValue prints a labeled value.
func KeyValue(key string, value interface{}, valueColor string) {
	printf("    %s%s%s  %s%v%s\n", dim, padRight(key, 18), reset, valueColor, value, reset)
}

// Elapsed formats a duration compactly for step results.
func Elapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dμs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
}
