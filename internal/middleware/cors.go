// Package middleware provides reusable HTTP middleware for the hunt packages API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// exposedHeaders are the response headers the browser client reads: the new
// session URL, the inquiry limiter's back-off and the CSV file name.
var exposedHeaders = []string{"Location", "Retry-After", "Content-Disposition"}

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry in allowedOrigins must be a full origin (scheme + host, no trailing slash).
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: exposedHeaders,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
