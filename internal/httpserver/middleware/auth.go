package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/davidbz/mirage/internal/config"
	"github.com/davidbz/mirage/internal/domain"
	"github.com/davidbz/mirage/internal/observability"
)

const bearerPrefix = "Bearer "

// Error messages mirror the upstream API's wording so clients exercise
// the same failure paths they would against the real service.
const (
	missingKeyMessage = "You didn't provide an API key. " +
		"You need to provide your API key in an Authorization header using Bearer auth " +
		"(i.e. Authorization: Bearer YOUR_KEY), or as the password field (with blank username) " +
		"if you're accessing the API from your browser and are prompted for a username and password. " +
		"You can obtain an API key from https://platform.openai.com/account/api-keys."
	malformedHeaderMessage = "You must provide the API key using Bearer authentication " +
		"(i.e. Authorization: Bearer YOUR_KEY)."
	incorrectKeyMessage = "Incorrect API key provided: ***. " +
		"You can find your API key at https://platform.openai.com/account/api-keys."
)

// Auth creates a middleware that enforces bearer token authentication
// on /v1 routes. The health check, the index page and the model listing
// stay open, matching the upstream API surface.
func Auth(cfg config.AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresAuth(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				writeAuthError(w, r, missingKeyMessage)
				return
			}

			if !strings.HasPrefix(header, bearerPrefix) {
				writeAuthError(w, r, malformedHeaderMessage)
				return
			}

			if strings.TrimPrefix(header, bearerPrefix) != cfg.APIKey {
				writeAuthError(w, r, incorrectKeyMessage)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresAuth(path string) bool {
	return strings.HasPrefix(path, "/v1/") && path != "/v1/models"
}

func writeAuthError(w http.ResponseWriter, r *http.Request, message string) {
	observability.FromContext(r.Context()).Warn("request rejected by auth",
		observability.String("path", r.URL.Path),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(domain.NewAuthenticationError(message)); err != nil {
		// Status already written, nothing left to do.
		return
	}
}
