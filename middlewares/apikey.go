package middlewares

import (
	"errors"
	"net/http"
	"stashspace/handlers/api"

	"github.com/sirupsen/logrus"
)

// HeaderAPIKey carries the shared secret on protected routes.
const HeaderAPIKey = "API-Key"

// RequireAPIKey gates protected routes behind the configured shared secret.
// An unconfigured secret fails closed: every request is rejected with a
// server error rather than letting traffic through.
func RequireAPIKey(secret string, exposeErrors bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logrus.WithField("path", r.URL.Path).Error("API_KEY is not configured, rejecting protected request")
				api.Error(w, r, http.StatusInternalServerError, "Server configuration error",
					errors.New("API_KEY is not set"), exposeErrors)
				return
			}
			if key := r.Header.Get(HeaderAPIKey); key != secret {
				logrus.WithFields(logrus.Fields{
					"api_key": key,
					"path":    r.URL.Path,
				}).Warn("Rejected request with invalid API key")
				api.Error(w, r, http.StatusUnauthorized, "Invalid API key", nil, exposeErrors)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
