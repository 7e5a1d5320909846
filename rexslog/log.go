package rexslog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format selects the encoding of emitted log records.
type Format string

const (
	// FormatJSON emits one JSON object per record.
	FormatJSON Format = "json"
	// FormatLogfmt emits key=value pairs per record.
	FormatLogfmt Format = "logfmt"
)

var (
	// ErrUnknownLevel indicates a level string outside [LevelStrings].
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat indicates a format string outside [FormatStrings].
	ErrUnknownFormat = errors.New("unknown log format")
)

// levelNames lists the accepted level strings, most severe first. The
// "warning" alias is accepted by [ParseLevel] but not listed.
var levelNames = []struct {
	name  string
	level slog.Level
}{
	{"error", slog.LevelError},
	{"warn", slog.LevelWarn},
	{"info", slog.LevelInfo},
	{"debug", slog.LevelDebug},
}

// LevelStrings returns every accepted log level string, most severe
// first.
func LevelStrings() []string {
	names := make([]string, 0, len(levelNames))
	for _, entry := range levelNames {
		names = append(names, entry.name)
	}

	return names
}

// FormatStrings returns every accepted log format string.
func FormatStrings() []string {
	return []string{string(FormatJSON), string(FormatLogfmt)}
}

// ParseLevel maps a level string onto the corresponding [slog.Level].
// Matching is case-insensitive; "warning" is accepted as an alias of
// "warn".
func ParseLevel(s string) (slog.Level, error) {
	name := strings.ToLower(s)
	if name == "warning" {
		name = "warn"
	}

	for _, entry := range levelNames {
		if entry.name == name {
			return entry.level, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ParseFormat maps a format string onto the corresponding [Format],
// case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatLogfmt:
		return FormatLogfmt, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// NewHandler builds a [slog.Handler] writing records to w in the given
// format, filtered to level and above.
func NewHandler(w io.Writer, level slog.Level, format Format) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	case FormatLogfmt:
		return slog.NewTextHandler(w, opts), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
