// Package contextkeys provides centralized context key definitions.
//
// All context keys used across the application are defined here so that key
// usage stays discoverable and typo-free.
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// PrincipalKey contains *auth.Principal.
	// Set by: middleware.AccountAuth / middleware.DeviceAuth
	// Required by: every authenticated endpoint handler
	PrincipalKey Key = "principal"

	// RequestIDKey contains the request ID string (UUID).
	// Set by: middleware.RequestID
	// Used by: request logging
	RequestIDKey Key = "request_id"
)

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID extracts the request ID, or "" when unset.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
