package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Subscriptions struct {
//	    service *subscription.Service
//	}
//
//	func (h *Subscriptions) Routes(r internal.Router) {
//	    r.POST("/subscriptions", h.subscribe)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the application's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing,
// or observe the response after next returns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
