package transport

import (
	"net/http"

	"github.com/rhuss/clauselens/pkg/api"
)

// HeaderRequestID is the header carrying the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// RequestID returns middleware that assigns a unique request ID to each
// request. A valid incoming X-Request-ID header is kept; otherwise a new
// ID is generated. The ID is echoed in the response header and stored in
// the context for RequestIDFromContext.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if !api.ValidateRequestID(id) {
				id = api.NewRequestID()
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
		})
	}
}
