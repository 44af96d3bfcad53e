// Package httputil provides HTTP handler utilities for consistent error
// handling, JSON encoding/decoding, and request parsing.
//
// WriteAppError is the response mapper for the apperr taxonomy: every handler
// funnels failures through it so each error kind maps to exactly one status
// code and body shape.
package httputil
