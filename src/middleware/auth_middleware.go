package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"expense-tracker/src/auth"
)

const TokenHeader = "x-auth-token"

// TokenFromRequest reads the session token from x-auth-token, falling back to
// an Authorization bearer token.
func TokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func AuthMiddleware(provider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			session, ok := provider.CurrentSession(r.Context(), token)
			if !ok {
				writeMsg(w, http.StatusBadRequest, "Token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
