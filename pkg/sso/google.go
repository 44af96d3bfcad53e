package sso

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/ariahq/aria/pkg/config"
)

// GoogleProvider builds login redirects using OIDC discovery, so endpoint
// URLs track whatever Google publishes rather than hard-coded constants
type GoogleProvider struct {
	oauth2Config *oauth2.Config
}

// NewGoogleProvider discovers the Google OIDC endpoints and creates the
// provider
func NewGoogleProvider(ctx context.Context, cfg config.SSOConfig) (*GoogleProvider, error) {
	issuer := cfg.GoogleIssuer
	if issuer == "" {
		issuer = "https://accounts.google.com"
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}

	return &GoogleProvider{
		oauth2Config: &oauth2.Config{
			ClientID:    cfg.GoogleClientID,
			Endpoint:    provider.Endpoint(),
			RedirectURL: cfg.CallbackURL,
			Scopes:      []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}

// Name returns the provider identifier
func (p *GoogleProvider) Name() string {
	return "google"
}

// AuthURL builds the authorization URL for the state
func (p *GoogleProvider) AuthURL(state string) string {
	return authCodeURL(p.oauth2Config, state)
}
