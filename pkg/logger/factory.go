package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a JSON logger named after the service that writes to sink.
// Any io.Writer works as a sink: os.Stdout in production, io.Discard or a
// bytes.Buffer in tests.
func New(name string, level slog.Level, sink io.Writer, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newJSONHandler(sink, level), extractors...)).
		With(slog.String("name", name))
}

func newJSONHandler(sink io.Writer, level slog.Level) slog.Handler {
	if sink == nil {
		sink = io.Discard
	}
	return slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: level})
}

// ParseLevel converts "debug", "info", "warn" or "error" (any case) into a
// slog.Level. Unknown or empty values fall back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
