package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/newsletter/internal"
)

// RequestLogger logs one line per request with method, path, status and
// duration. Place it after RequestID so the line carries the request ID.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Status()
			if err != nil && !c.Written() {
				// The error handler writes the response after the chain unwinds.
				status = http.StatusInternalServerError
				if he := internal.AsHTTPError(err); he != nil {
					status = he.StatusCode()
				}
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}
			switch {
			case status >= http.StatusInternalServerError:
				c.LogError("request completed", append(attrs, slog.Any("error", err))...)
			case err != nil:
				c.LogWarn("request completed", append(attrs, slog.Any("error", err))...)
			default:
				c.LogInfo("request completed", attrs...)
			}

			return err
		}
	}
}
