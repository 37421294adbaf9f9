package middleware

import "context"

// authContextKey is the key type for values this package stores in contexts
type authContextKey string

const (
	// AuthContextKey is used to store auth info in the request context
	AuthContextKey authContextKey = "auth"

	// RequestIDContextKey is used to store the request ID
	RequestIDContextKey authContextKey = "request_id"
)

// AuthInfo is the authentication outcome stored in the request context.
type AuthInfo struct {
	// User is the principal established by the verify callback.
	User any

	// Info is auxiliary metadata the callback attached.
	Info any

	// Strategy names the strategy that authenticated the request.
	Strategy string
}

// AuthFromContext returns the AuthInfo for an authenticated request.
func AuthFromContext(ctx context.Context) (*AuthInfo, bool) {
	info, ok := ctx.Value(AuthContextKey).(*AuthInfo)
	return info, ok
}

// RequestIDFromContext returns the request ID, or an empty string when
// none was assigned.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}
