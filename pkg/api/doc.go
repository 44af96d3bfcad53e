// Package api implements the HTTP endpoint handlers.
//
// Every handler follows the same request protocol: authentication runs in
// middleware before the handler body, payloads are validated against a
// declared schema, referenced entities are resolved through repositories,
// mutations happen through repository writes, and results map to JSON
// responses through pkg/httputil. Handlers are grouped into structs with
// injected dependencies and a RegisterRoutes method; no handler touches
// global state.
package api
