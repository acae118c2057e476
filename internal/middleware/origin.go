package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

// OriginGuard rejects cross-origin requests whose Origin header does not
// match the allow-list. Requests without an Origin header (server-to-server,
// curl) always pass.
type OriginGuard struct {
	allowed []string
}

func NewOriginGuard(allowed []string) *OriginGuard {
	return &OriginGuard{allowed: allowed}
}

// Allowed reports whether the given Origin header value may proceed. Matching
// is by equality or prefix, which keeps currently-allowed hosting subdomains
// working; do not tighten to full origin parsing.
func (g *OriginGuard) Allowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, a := range g.allowed {
		if origin == a || strings.HasPrefix(origin, a) {
			return true
		}
	}
	return false
}

func (g *OriginGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if !g.Allowed(origin) {
			writeError(w, http.StatusForbidden, "ORIGIN_FORBIDDEN", "Origin not allowed", r)
			return
		}
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":       code,
			"message":    message,
			"request_id": requestID,
		},
	})
}
