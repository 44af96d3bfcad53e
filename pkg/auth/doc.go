// Package auth resolves bearer tokens to authenticated principals.
//
// Tokens are opaque random strings. Only the SHA-256 hash of a token is ever
// stored: the session store maps session:<hash> to a JSON principal record in
// Redis, so a leaked store dump cannot be replayed as live credentials.
package auth
