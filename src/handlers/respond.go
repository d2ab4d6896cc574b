package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"expense-tracker/src/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// writeError maps domain errors to a status code and client message.
func writeError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeMsg(w, http.StatusBadRequest, validationMessage(vErr))
	case errors.Is(err, models.ErrDuplicateUser):
		writeMsg(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, models.ErrNoSuchAccount):
		writeMsg(w, http.StatusBadRequest, "User does not exist")
	case errors.Is(err, models.ErrInvalidCredentials):
		writeMsg(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, models.ErrNotFound):
		writeMsg(w, http.StatusNotFound, "Expense not found")
	case errors.Is(err, models.ErrUnauthorized):
		writeMsg(w, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, models.ErrAuth):
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
	default:
		log.Printf("ERROR: %v", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
	}
}

func validationMessage(err *models.ValidationError) string {
	switch err.Field {
	case "fields":
		return "Please enter all fields"
	case "amount", "category":
		if err.Reason == "is required" {
			return "Amount and Category are required"
		}
	}
	return err.Error()
}
