// Package transport holds the HTTP plumbing shared by the server: the
// service contracts the handlers depend on, JSON error writing, and the
// cross-cutting middleware (panic recovery, request IDs, access logging,
// CORS).
//
// # Middleware
//
// Middleware has the net/http shape func(http.Handler) http.Handler, so it
// composes with gorilla/mux routers as well as plain handlers. Chain(a, b, c)
// produces a(b(c(handler))): the first middleware is the outermost.
//
// Every response carries an X-Request-ID header. An incoming, well-formed
// X-Request-ID is reused; otherwise a new one is generated. The ID is also
// stored in the request context (RequestIDFromContext) and appears in every
// access log line.
package transport
