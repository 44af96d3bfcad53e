// Package observability provides structured logging, Prometheus metrics, and
// health check endpoints shared by all Aria binaries.
package observability
