// Package server holds the HTTP server configuration.
//
// The Config struct defines the HTTP port, the API key checked by the auth
// middleware, and the upload body limit applied to the Fiber app.
//
// This package is embedded by core/config and read by the start command.
package server
