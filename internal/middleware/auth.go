package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"icatdirect/internal/auth"
	"icatdirect/internal/httputil"
)

// DevUserParam names the query parameter that selects the user when no
// verifier is configured
const DevUserParam = "user"

// AuthMiddleware resolves the iRODS user for each request. With a verifier the
// user comes from the bearer token; without one (development) it is read from
// the "user" query parameter. Paths in public bypass authentication.
func AuthMiddleware(verifier auth.JWTVerifier, logger *slog.Logger, public ...string) func(http.Handler) http.Handler {
	isPublic := make(map[string]bool, len(public))
	for _, p := range public {
		isPublic[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			var username string
			if verifier == nil {
				username = r.URL.Query().Get(DevUserParam)
			} else {
				token, ok := bearerToken(r)
				if !ok {
					httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
					return
				}
				claims, err := verifier.VerifyToken(token)
				if err != nil {
					httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
					return
				}
				username = claims.GetUsername()
			}

			if username == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "no user for request")
				return
			}

			logger.Debug("request authenticated", "user", username, "path", r.URL.Path)
			next.ServeHTTP(w, httputil.WithUser(r, username))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
