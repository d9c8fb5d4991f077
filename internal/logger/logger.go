// Package logger provides levelled logging for the IMS console.
//
// Debug and Info messages are printed only in verbose mode (--verbose).
// Warnings are always printed unless the logger is quiet, which the TUI
// enables so log lines do not corrupt the alternate screen.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	quiet   bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetQuiet suppresses all output, including warnings.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(true, "[DEBUG] "+format+"\n", args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(true, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning message unless the logger is quiet.
func Warn(format string, args ...any) {
	write(false, "[WARN] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	write(true, "\n=== %s ===\n", name)
}

func write(verboseOnly bool, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if quiet || (verboseOnly && !verbose) {
		return
	}
	fmt.Fprintf(output, format, args...)
}
