// Package apperr defines the error taxonomy shared by all API endpoints.
//
// Handlers and repositories return these typed errors; the response mapper in
// pkg/httputil translates them into HTTP statuses and JSON bodies. Anything
// that is not one of these types is treated as an internal error.
package apperr
