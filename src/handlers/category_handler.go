package handlers

import (
	"net/http"

	"expense-tracker/src/models"
)

func GetCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Catalog())
	}
}
