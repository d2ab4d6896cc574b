package middleware

import (
	"net/http"
)

// DemoModeMiddleware makes the API read-only apart from signing in and out.
func DemoModeMiddleware(isDemo bool) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/api/auth/login":    true,
		"/api/auth/register": true,
		"/api/auth/logout":   true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isDemo && r.Method != http.MethodGet && r.Method != http.MethodOptions {
				if r.Method == http.MethodPost && allowedPosts[r.URL.Path] {
					next.ServeHTTP(w, r)
					return
				}
				writeMsg(w, http.StatusForbidden, "Demo mode: only GET requests are allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
