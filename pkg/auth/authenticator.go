package auth

import (
	"context"
	"net/http"

	"github.com/ariahq/aria/pkg/apperr"
)

// Authenticator resolves HTTP requests to principals
type Authenticator struct {
	sessions *SessionStore
}

// NewAuthenticator creates an authenticator over the session store
func NewAuthenticator(sessions *SessionStore) *Authenticator {
	return &Authenticator{sessions: sessions}
}

// Authenticate extracts the bearer token and resolves its session.
// Missing or unknown tokens fail with an authentication error before any
// other request processing happens.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (*Principal, error) {
	token := BearerToken(r)
	if token == "" {
		return nil, apperr.Unauthenticated("missing bearer token")
	}
	return a.sessions.Resolve(ctx, HashToken(token))
}

// AuthenticateDevice resolves the request and checks the token belongs to a
// device. The device named in the URL must be the device that authenticated.
func (a *Authenticator) AuthenticateDevice(ctx context.Context, r *http.Request, deviceID string) (*Principal, error) {
	principal, err := a.Authenticate(ctx, r)
	if err != nil {
		return nil, err
	}
	if !principal.IsDevice() {
		return nil, apperr.Unauthenticated("device token required")
	}
	if principal.DeviceID != deviceID {
		return nil, apperr.Unauthenticated("token does not match device")
	}
	return principal, nil
}
