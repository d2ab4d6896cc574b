package handlers

import (
	"log"
	"net/http"

	"expense-tracker/src/auth"
)

func GetUser(provider auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		user, err := provider.User(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to get user - user_id: %s: %v", userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
