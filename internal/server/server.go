// package server contains middleware & handlers for the read-only archive API
package server

import (
	"net/http"
)

// Middleware decorates an [http.Handler].
type Middleware func(http.Handler) http.Handler

// Chain composes middleware so the first one listed is outermost.
func Chain(middleware ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(middleware) - 1; i >= 0; i-- {
			next = middleware[i](next)
		}
		return next
	}
}

// Handler is an [http.Handler] that knows the patterns it should be mounted on.
type Handler interface {
	http.Handler
	Routes() []string
}

// Router registers method-scoped handlers and self-routing [Handler]s behind a middleware stack.
type Router interface {
	http.Handler
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	Patterns() []string
}
