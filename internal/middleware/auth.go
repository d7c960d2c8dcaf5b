package middleware

import (
	"net/http"
	"strings"

	"adalyze/internal/auth"
	"adalyze/internal/httputil"
)

// authExemptPaths are reachable without a bearer token. Health must stay
// open for load balancer probes.
var authExemptPaths = map[string]bool{
	"/health": true,
}

// AuthMiddleware validates the Authorization bearer token against Supabase
// and stores the authenticated user ID in the request context.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authExemptPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
