package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `yaml:"dsn" env:"DSN"`
	Environment string `yaml:"environment" env:"ENVIRONMENT"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level `yaml:"-"`
}

// NewWithSentry creates a logger that writes JSON to sink and forwards
// warnings and errors to Sentry.
// If DSN is empty, it behaves exactly like New (graceful fallback for local dev).
func NewWithSentry(name string, level slog.Level, sink io.Writer, cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	sinkHandler := newJSONHandler(sink, level)

	if cfg.DSN == "" {
		return New(name, level, sink, extractors...)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(sinkHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return New(name, level, sink, extractors...)
	}

	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel, // Errors create Issues in Sentry
		LogLevel:   logLevel,   // Logs stored for context/search
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(sinkHandler, sentryHandler)
	return slog.New(NewLogHandlerDecorator(combined, extractors...)).
		With(slog.String("name", name))
}
