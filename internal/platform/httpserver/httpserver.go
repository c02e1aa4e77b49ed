// Package httpserver configures the http.Server that fronts the directory
// API. Handler deadlines live in the router middleware; the timeouts here
// guard the connection itself.
package httpserver

import (
	"net/http"
	"time"
)

const (
	// readHeaderTimeout caps how long a client may dribble request headers
	// before the connection is dropped.
	readHeaderTimeout = 5 * time.Second

	// writeTimeout must stay above the per-request context deadline so a
	// slow request fails with a JSON error body, not a reset connection.
	writeTimeout = 35 * time.Second

	idleTimeout = 60 * time.Second
)

// New builds the server for the given listen address and root handler.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
