// Package internal provides the HTTP kernel the newsletter service runs on.
//
// It is a thin layer over [github.com/go-chi/chi/v5] that gives handlers a
// request-scoped [Context], error-returning [HandlerFunc]s and a graceful run
// loop. Application code lives in sibling packages and plugs in through
// [Handler] implementations.
//
// # Core Types
//
//   - App: owns the router, middleware chain, health endpoints and error handler
//   - Context: request/response access, form values, logging and request values
//   - Router: interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: route handler signature that returns an error
//   - Middleware: wraps a HandlerFunc to add cross-cutting concerns
//   - ErrorHandler: turns a handler error into a response
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to repository
// calls and outbound HTTP clients:
//
//	func (h *Subscriptions) subscribe(c internal.Context) error {
//	    if err := h.service.Subscribe(c, form); err != nil {
//	        return err
//	    }
//	    return c.NoContent(http.StatusOK)
//	}
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(handlers.NewSubscriptions(service)),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("postgres", db.Healthcheck(pool))),
//	)
//
//	ln, _ := internal.Listen("127.0.0.1:0")
//	err := app.Serve(ln, internal.ShutdownHook(db.Shutdown(pool)))
//
// # Error Handling
//
// Handlers return errors instead of writing failure responses. Use
// [Context.Error] or the ErrXxx constructors to attach a status code; the
// configured [ErrorHandler] renders it. Without a custom handler, an
// [HTTPError] is written with its status code and an empty body and any
// other error becomes a 500.
package internal
