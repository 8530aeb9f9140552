package graphql

import (
	"context"
	"net/http"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeyLocation contextKey = "location"

// Location header/param resolution for scoped queries.
// Resolved from: Location header > __Location query param.
const (
	HeaderLocation     = "Location"
	QueryParamLocation = "__Location"
)

// LocationFromContext returns the location scope for the current request,
// empty for network-wide queries.
func LocationFromContext(ctx context.Context) string {
	if v := ctx.Value(CtxKeyLocation); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// WithLocation attaches a location scope to context.
func WithLocation(ctx context.Context, locationID string) context.Context {
	return context.WithValue(ctx, CtxKeyLocation, locationID)
}

// GetLocation extracts the location scope from the request.
// Priority: 1) Location header, 2) __Location query param.
func GetLocation(r *http.Request) string {
	if h := r.Header.Get(HeaderLocation); h != "" {
		return h
	}
	return r.URL.Query().Get(QueryParamLocation)
}
