// Package middlewares provides the HTTP middleware the newsletter service
// installs on its kernel app.
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.RequestLogger(),
//	        middlewares.Recover(),
//	    ),
//	)
//
// The first middleware listed is the outermost one. RequestID should come
// first so that later log lines carry the ID; build the logger with
// RequestIDExtractor to get "request_id" on every record.
//
// Recover converts panics into *PanicError, which the kernel's error handler
// answers with a 500.
package middlewares
