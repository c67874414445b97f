// Package requestid carries the inbound request ID through contexts so
// outbound calls can be correlated with the request that caused them.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request ID
const Header = "X-Request-ID"

type contextKey struct{}

// New returns a fresh request ID
func New() string {
	return uuid.New().String()
}

// WithID stores id in ctx
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request ID stored in ctx, or ""
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
