// Package logging builds the structured loggers used across simcheck.
//
// Logs go to stderr as text and, optionally, to a file as JSON lines. Test reports are
// not logs: they are printed to stdout by the runner's reporter.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures a logger
type Options struct {
	// Level is the minimum level printed to the console (debug, info, warn, error)
	Level string

	// File, if not empty, receives every record at debug level as JSON
	File string

	// Console is where text logs are written. Defaults to stderr.
	Console io.Writer
}

// ParseLevel returns the slog level with the given name
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level

	if strings.TrimSpace(name) == "" {
		return slog.LevelWarn, nil
	}

	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level '%s'", name)
	}

	return level, nil
}

// New returns a logger configured by opts and a function closing its log file, if any
func New(opts Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}
	closer := func() error { return nil }

	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file '%s': %w", opts.File, err)
		}

		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = file.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
