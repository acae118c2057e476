package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOriginGuardAllowed(t *testing.T) {
	guard := NewOriginGuard([]string{"https://app.planpilot.dev", "http://localhost:5173"})

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin header", "", true},
		{"exact match", "https://app.planpilot.dev", true},
		{"prefix match", "https://app.planpilot.dev.pages.example", true},
		{"unknown origin", "https://evil.example", false},
		{"partial host is not a prefix", "https://app.planpilot", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, guard.Allowed(tc.origin))
		})
	}
}

func TestOriginGuardMiddleware(t *testing.T) {
	guard := NewOriginGuard([]string{"http://localhost:5173"})

	handlerHit := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerHit = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects before handler logic", func(t *testing.T) {
		handlerHit = false
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		req.Header.Set("Origin", "https://evil.example")
		rr := httptest.NewRecorder()

		guard.Middleware(next).ServeHTTP(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code)
		require.False(t, handlerHit, "handler must not run for rejected origins")
	})

	t.Run("passes without origin header", func(t *testing.T) {
		handlerHit = false
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		rr := httptest.NewRecorder()

		guard.Middleware(next).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.True(t, handlerHit)
	})

	t.Run("echoes allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rr := httptest.NewRecorder()

		guard.Middleware(next).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}
