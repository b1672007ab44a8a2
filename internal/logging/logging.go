// Package logging routes slog output to a rotating file. The dashboard owns
// the terminal, so nothing is ever logged to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the log file
type Options struct {
	Path       string
	Debug      bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func newRotatingWriter(opts Options) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    1,  // 1MB (in megabytes) - default
		MaxBackups: 2,  // Keep 2 old files - default
		MaxAge:     30, // Keep for 30 days - default
		Compress:   false,
	}
	if opts.MaxSizeMB > 0 {
		w.MaxSize = opts.MaxSizeMB
	}
	if opts.MaxBackups >= 0 {
		w.MaxBackups = opts.MaxBackups
	}
	if opts.MaxAgeDays > 0 {
		w.MaxAge = opts.MaxAgeDays
	}
	return w
}

// New builds a logger writing to the rotating file at opts.Path. The
// returned closer flushes and closes the file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if opts.Path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := newRotatingWriter(opts)
	return slog.New(newHandler(w, opts.Debug)), w, nil
}

func newHandler(w io.Writer, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
			}
			return a
		},
	})
}

// Setup builds the logger and installs it as the slog default
func Setup(opts Options) (io.Closer, error) {
	logger, closer, err := New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closer, nil
}
