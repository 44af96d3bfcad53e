// Package config loads application configuration from environment variables.
//
// All settings use the ARIA_ prefix. Configuration is loaded once at process
// start and passed to components via constructor injection; nothing reads the
// environment after startup.
package config
