package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSConfig lists the browser origins allowed to call the preview API.
type CORSConfig struct {
	AllowedOrigins []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// DefaultCORSConfig allows no origins.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{MaxAge: 300}
}

// CORS returns middleware that answers preflight requests and sets the
// Access-Control headers for allowed origins.  With no origins configured the
// handler is returned unchanged.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	if len(config.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{
			"X-Request-ID",
			"X-Scene-ID",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"Retry-After",
		},
		MaxAge: config.MaxAge,
	})
}

//Personal.AI order the ending
