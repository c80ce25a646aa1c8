// Package logging provides structured logging setup using Go's standard library log/slog package.
//
// Hooks log in logfmt (human-readable key=value pairs). The level comes from
// either the VERBOSE convention shared with the other binaries of the
// platform (0, 1, 2) or the module's logLevel setting names
// (ERROR, WARN, INFO, DEBUG, TRACE).
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is below slog.LevelDebug and matches the module's TRACE setting.
const LevelTrace = slog.Level(-8)

// NewLogger creates a logfmt logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	})

	return slog.New(handler)
}

// Level resolves the logger level. A non-empty logLevel wins over verbose.
func Level(verbose, logLevel string) slog.Level {
	if strings.TrimSpace(logLevel) != "" {
		return ParseLogLevel(logLevel)
	}
	return LevelFromVerbose(verbose)
}

// LevelFromVerbose maps VERBOSE to a level.
// 0 = WARNING, 1 = INFO (default), 2 = DEBUG
func LevelFromVerbose(verbose string) slog.Level {
	switch strings.TrimSpace(verbose) {
	case "0":
		return slog.LevelWarn
	case "2":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel converts a string log level to slog.Level.
// Returns slog.LevelInfo for invalid or empty levels.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "ERROR":
		return slog.LevelError
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "INFO":
		return slog.LevelInfo
	case "DEBUG":
		return slog.LevelDebug
	case "TRACE":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// replaceLevel prints LevelTrace as TRACE instead of DEBUG-4.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}
