// Package middleware provides the HTTP request pipeline: request IDs,
// structured request logging with metrics, panic recovery, and the
// authentication gates for account and device routes.
//
// Authentication runs before any other request processing. A request that
// cannot be resolved to a principal is rejected with 401 without touching
// request bodies, path parameters, or storage.
package middleware
