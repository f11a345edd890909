// Package logger builds the service's structured JSON logger on top of log/slog.
//
// Every logger carries the service name and a minimum level, and writes to a
// caller-supplied sink so tests can discard or capture output:
//
//	log := logger.New("newsletter", logger.ParseLevel("info"), os.Stdout,
//		logger.StringFromContext(requestIDKey{}, "request_id"),
//	)
//
// Context extractors run on every record, so request-scoped values added by
// middleware show up on each line logged with that request's context.
//
// NewWithSentry additionally forwards warnings and errors to Sentry. With an
// empty DSN it is equivalent to New, so the same wiring works locally.
package logger
