package auth

import (
	"context"

	"github.com/ariahq/aria/pkg/contextkeys"
)

// Principal identifies the authenticated caller of a request. Account tokens
// carry only an account ID; device tokens carry both the device and its
// owning account.
type Principal struct {
	AccountID string `json:"accountId"`
	DeviceID  string `json:"deviceId,omitempty"`
}

// IsDevice reports whether the principal authenticated with a device token
func (p *Principal) IsDevice() bool {
	return p.DeviceID != ""
}

// WithPrincipal stores the principal on the request context
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextkeys.PrincipalKey, p)
}

// PrincipalFrom retrieves the authenticated principal, if any
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextkeys.PrincipalKey).(*Principal)
	return p, ok
}
