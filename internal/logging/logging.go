// Package logging builds the process logger.
//
// The logger is constructed once by the command and handed to every
// component that logs; there is no package-level logger.
//
//	logger, err := logging.New(os.Stdout, logging.Options{Level: "info"})
//	fetcher := releases.NewFetcher(client, baseURL, releases.WithLogger(logger))
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout of every log line.
const TimeFormat = "2006-01-02 15:04:05.000"

// Options configures the logger.
type Options struct {
	// Level is one of debug, info, warn, error, fatal.
	// Default: debug
	Level string

	// Format is one of text, json, logfmt.
	// Default: text
	Format string
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level := log.DebugLevel
	if opts.Level != "" {
		var err error
		level, err = log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
	}

	formatter, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
	}), nil
}

// ParseFormat maps a format name to a formatter.
func ParseFormat(name string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("logging: unknown format %q", name)
	}
}

// Discard returns a logger that drops everything. Useful for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
