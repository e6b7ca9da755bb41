// Package middleware provides reusable HTTP middleware for the trip planner API.
package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{"Content-Type", "Authorization"}
	// Location names a newly started session; Content-Disposition names a CSV export.
	corsExposed = []string{"Location", "Content-Disposition"}
)

// NewCORSHandler returns a middleware that applies CORS headers for allowedOrigins.
// Entries are full origins (scheme + host, no trailing slash); a lone "*"
// allows any origin. Sessions travel in the URL, not in cookies, so
// credentials are never allowed.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: corsMethods,
		AllowedHeaders: corsHeaders,
		ExposedHeaders: corsExposed,
		MaxAge:         600,
	}
	if slices.Contains(allowedOrigins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(string) bool { return true }
	}
	c := cors.New(opts)
	return c.Handler
}
