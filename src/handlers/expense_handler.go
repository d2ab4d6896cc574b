package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"expense-tracker/src/auth"
	"expense-tracker/src/ingest"
	"expense-tracker/src/store"
	"expense-tracker/src/summary"
)

type createExpenseRequest struct {
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	PaymentMode string          `json:"paymentMode"`
	Note        string          `json:"note"`
}

// amountText returns the amount as the form sent it: a JSON number or a
// numeric string. Null and empty strings read as missing.
func amountText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return string(raw)
}

func GetExpenses(txns store.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		list, err := txns.ListAll(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to list expenses - user_id: %s: %v", userID, err)
			writeError(w, err)
			return
		}
		summary.SortByDateDesc(list)

		writeJSON(w, http.StatusOK, nonNil(list))
	}
}

func CreateExpense(svc *ingest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		var req createExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create expense request body: %v", err)
			writeMsg(w, http.StatusBadRequest, "invalid request")
			return
		}

		tx, err := svc.Submit(r.Context(), userID, ingest.RawForm{
			Amount:      amountText(req.Amount),
			Category:    req.Category,
			Type:        req.Type,
			Date:        req.Date,
			PaymentMode: req.PaymentMode,
			Note:        req.Note,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create expense - user_id: %s: %v", userID, err)
			writeError(w, err)
			return
		}

		log.Printf("INFO: Created %s %s - user_id: %s, amount: %.2f", tx.Type, tx.ID, userID, tx.Amount)
		writeJSON(w, http.StatusOK, tx)
	}
}

func DeleteExpense(txns store.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		id := chi.URLParam(r, "id")

		if err := txns.DeleteByID(r.Context(), userID, id); err != nil {
			log.Printf("ERROR: Failed to delete expense %s - user_id: %s: %v", id, userID, err)
			writeError(w, err)
			return
		}

		log.Printf("INFO: Deleted expense %s - user_id: %s", id, userID)
		writeMsg(w, http.StatusOK, "Expense removed")
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
