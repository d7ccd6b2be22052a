package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/davidbz/mirage/internal/config"
)

// CORS creates a middleware that handles Cross-Origin Resource Sharing (CORS)
// using the github.com/rs/cors library.
func CORS(cfg config.CORSConfig) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: cfg.AllowedHeaders,
	})

	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
