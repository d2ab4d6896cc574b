package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"expense-tracker/src/auth"
	"expense-tracker/src/middleware"
	"expense-tracker/src/models"
)

func Register(provider auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			writeMsg(w, http.StatusBadRequest, "invalid request")
			return
		}

		session, err := provider.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			log.Printf("ERROR: Registration failed - Email: %s: %v", req.Email, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, authResponse(session))
	}
}

func Login(provider auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			writeMsg(w, http.StatusBadRequest, "invalid request")
			return
		}

		session, err := provider.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			log.Printf("ERROR: Login failed - Email: %s from IP %s: %v", req.Email, r.RemoteAddr, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, authResponse(session))
	}
}

func Logout(provider auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := provider.Logout(r.Context(), middleware.TokenFromRequest(r)); err != nil {
			writeError(w, err)
			return
		}
		writeMsg(w, http.StatusOK, "Logged out")
	}
}

func authResponse(s *auth.Session) models.AuthResponse {
	resp := models.AuthResponse{Token: s.Token, User: s.User}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt.UTC()
		resp.ExpiresAt = &exp
	}
	return resp
}
