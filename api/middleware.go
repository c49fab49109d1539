package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// identityFrom returns the verified caller attached by requireAuth. Handlers
// behind requireAuth can rely on it being present.
func identityFrom(ctx context.Context) auth.Identity {
	id, _ := ctx.Value(identityKey).(auth.Identity)
	return id
}

// requireAuth verifies the bearer token and attaches the caller identity to
// the request context. Any failure is a 401 with a fixed detail; the cause
// stays in the logs.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		id, err := s.verifier.Verify(r.Context(), token)
		if err != nil {
			s.logger.Warn("Token verification failed", "error", err)
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, id)
		next(w, r.WithContext(ctx))
	}
}

// withCORS applies a permissive CORS policy and answers preflight requests.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
