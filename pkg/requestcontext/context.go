// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middlewares set these values; services read them. Keeping the package free
// of net/http lets services import only what they need.
//
// Usage in services (read values):
//
//	userID := requestcontext.UserID(ctx)
//	requestID := requestcontext.RequestID(ctx)
package requestcontext

import (
	"context"
)

// Context key types (unexported for encapsulation).
type (
	userIDKey     struct{}
	requestIDKey  struct{}
	clientIPKey   struct{}
	userAgentKey  struct{}
	clientInfoKey struct{}
)

// WithUserID stores the authenticated worker ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated worker ID, or "" when unauthenticated.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey{}).(string)
	return v
}

// WithRequestID stores the request correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request correlation ID, or "" when unset.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// WithClientIP stores the remote address for audit events.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func ClientIP(ctx context.Context) string {
	v, _ := ctx.Value(clientIPKey{}).(string)
	return v
}

// WithUserAgent stores the raw User-Agent header.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}

func UserAgent(ctx context.Context) string {
	v, _ := ctx.Value(userAgentKey{}).(string)
	return v
}

// WithClientInfo stores the parsed browser/platform summary.
func WithClientInfo(ctx context.Context, info string) context.Context {
	return context.WithValue(ctx, clientInfoKey{}, info)
}

func ClientInfo(ctx context.Context) string {
	v, _ := ctx.Value(clientInfoKey{}).(string)
	return v
}
