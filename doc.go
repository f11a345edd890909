// Package newsletter assembles the subscription service: it connects to
// Postgres, applies migrations, builds the email pipeline and serves the
// HTTP API.
//
// The usual entry point is:
//
//	app, err := newsletter.Build(ctx, settings, log)
//	if err != nil {
//		return err
//	}
//	return app.Run(ctx)
//
// Build binds the listening socket before returning, so Port reports the
// real port even when the configuration asks for port 0.
package newsletter
