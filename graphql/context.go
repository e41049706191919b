package graphql

import (
	"context"
	"net/http"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeySessionID contextKey = "sessionID"

// Session id is resolved from: Upsell-Session header > __Session query param.
const (
	HeaderSession     = "Upsell-Session"
	QueryParamSession = "__Session"
)

// SessionIDFromContext returns the upsell session id for the current request.
func SessionIDFromContext(ctx context.Context) string {
	if v := ctx.Value(CtxKeySessionID); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// WithSessionID attaches a session id to context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxKeySessionID, id)
}

// GetSessionID extracts the session id from a request.
func GetSessionID(r *http.Request) string {
	if h := r.Header.Get(HeaderSession); h != "" {
		return h
	}
	return r.URL.Query().Get(QueryParamSession)
}
