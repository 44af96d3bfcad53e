package sso

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"

	"github.com/ariahq/aria/pkg/config"
)

// FacebookProvider builds login redirects against Facebook's static OAuth2
// endpoint
type FacebookProvider struct {
	oauth2Config *oauth2.Config
}

// NewFacebookProvider creates the Facebook provider
func NewFacebookProvider(cfg config.SSOConfig) *FacebookProvider {
	return &FacebookProvider{
		oauth2Config: &oauth2.Config{
			ClientID:    cfg.FacebookClientID,
			Endpoint:    facebook.Endpoint,
			RedirectURL: cfg.CallbackURL,
			Scopes:      []string{"email"},
		},
	}
}

// Name returns the provider identifier
func (p *FacebookProvider) Name() string {
	return "facebook"
}

// AuthURL builds the authorization URL for the state
func (p *FacebookProvider) AuthURL(state string) string {
	return authCodeURL(p.oauth2Config, state)
}
