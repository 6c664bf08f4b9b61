package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how verbosely platewatch logs
type Options struct {
	File   string // rotating log file; empty logs to Stderr
	Debug  bool
	Prefix string
}

// New creates a logger for one component.
// While the TUI owns the terminal logs must go to a file.
func New(opts Options) (*log.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." && dir != "" {
			_ = os.MkdirAll(dir, 0755)
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 0,
			MaxAge:     30, // days
		}
		w = rotator
		closer = rotator
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          opts.Prefix,
	})
	if opts.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
