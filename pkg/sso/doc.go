// Package sso builds social-login redirects. Each provider exposes the
// authorization URL a browser should visit to start the login flow; Facebook
// uses its static OAuth2 endpoint while Google is resolved through OIDC
// discovery.
package sso
