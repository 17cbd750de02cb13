// Package logfile owns the launcher's single output destination: the log
// file that receives the launcher's own lines and the application's merged
// standard output and standard error.
package logfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Mode selects how an existing log file is treated.
type Mode string

const (
	Truncate Mode = "truncate"
	Append   Mode = "append"
)

// Open opens path for writing, creating parent directories. Truncate matches
// a shell `>` redirect, Append matches `>>`.
func Open(path string, mode Mode) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("open log: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	flags := os.O_CREATE | os.O_WRONLY
	switch mode {
	case Append:
		flags |= os.O_APPEND
	case Truncate, "":
		flags |= os.O_TRUNC
	default:
		return nil, fmt.Errorf("open log: unknown mode %q", mode)
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

// NewLogger returns the launcher logger writing to w.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "poresippr",
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
