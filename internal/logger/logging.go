// Package logger provides modifications to charmbracelet/log's default logger to be used in various packages.
//
// Stdout belongs to the IPC protocol and the terminal UI, so everything here
// writes to stderr or a file.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New derives a prefixed logger from the global one. It copies the global
// output, level and formatter as they are at the time of the call.
func New(prefix string) *log.Logger {
	return log.Default().WithPrefix(prefix)
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// RedirectToFile points the global logger at path, appending. The terminal UI
// uses this so log lines do not tear the screen.
func RedirectToFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	return f, nil
}
