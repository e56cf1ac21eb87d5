// Package logger provides opt-in diagnostic logging for lifta.
//
// All output goes to stderr and is gated behind the --verbose flag, so
// command output stays clean for piping. The indexing and query
// pipelines log their stage decisions (extractor choice, quality gate
// verdicts, retrieval scores) through this package.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var verbose atomic.Bool

// outMu serializes writes so concurrent pipeline stages cannot
// interleave their log lines.
var (
	outMu  sync.Mutex
	output io.Writer = os.Stderr
)

// SetVerbose enables or disables diagnostic output.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// IsVerbose reports whether diagnostic output is enabled.
func IsVerbose() bool {
	return verbose.Load()
}

// SetOutput redirects diagnostic output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	output = w
}

// Debug logs fine-grained pipeline decisions.
func Debug(format string, args ...any) {
	emit("DEBUG", format, args...)
}

// Info logs run-level progress.
func Info(format string, args ...any) {
	emit("INFO", format, args...)
}

// Warn logs recoverable problems.
func Warn(format string, args ...any) {
	emit("WARN", format, args...)
}

// Section prints a header separating the phases of a long run.
func Section(name string) {
	if !verbose.Load() {
		return
	}
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

func emit(level, format string, args ...any) {
	if !verbose.Load() {
		return
	}
	line := fmt.Sprintf(format, args...)
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(output, "[%s] %s\n", level, line)
}
