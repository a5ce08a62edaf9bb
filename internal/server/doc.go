// Package server provides HTTP routing, middleware, and the JSON API over a loaded archive.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering. Paths may use
// [http.ServeMux] wildcards such as "/reviews/{id}".
//
// # Middleware
//
//   - [RequestID] tags each request with a uuid in the X-Request-ID header
//   - [Logging] logs method, path, status and duration
//   - [Recover] turns handler panics into 500 responses
//   - [RateLimit] rejects requests over a token-bucket limit with 429
//
// # Archive API
//
// [API] serves read-only JSON derived from an immutable archive snapshot. The snapshot sits behind an
// atomic pointer and is only ever replaced whole by [API.Store], so requests never see a partial reload.
//
//	GET /health
//	GET /reviews/recent
//	GET /reviews/pickups?seed=&page=
//	GET /reviews/search?q=&mode=
//	GET /reviews/{id}
//	GET /reviews/{id}/related?page=
//	GET /library?letter=
//	GET /best?year=
//	GET /about
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [HealthHandler] is registered this way.
package server
