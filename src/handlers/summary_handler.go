package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"expense-tracker/src/auth"
	"expense-tracker/src/models"
	"expense-tracker/src/report"
	"expense-tracker/src/store"
	"expense-tracker/src/summary"
)

// Clock supplies the current time in the server's configured location.
type Clock func() time.Time

// parseMonth resolves the "month" query parameter (YYYY-MM) to the first
// instant of that month. An absent parameter means the current month.
func parseMonth(r *http.Request, now time.Time) (time.Time, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), false, nil
	}
	m, err := time.ParseInLocation("2006-01", raw, now.Location())
	if err != nil {
		return time.Time{}, true, &models.ValidationError{Field: "month", Reason: "must be YYYY-MM"}
	}
	return m, true, nil
}

// queryList accepts both repeated parameters and comma-separated values.
func queryList(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// loadForUser resolves the session user and their transactions. It writes
// the error response itself and returns false on failure.
func loadForUser(w http.ResponseWriter, r *http.Request, txns store.TransactionStore) ([]models.Transaction, bool) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return nil, false
	}
	list, err := txns.ListAll(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR: Failed to list expenses - user_id: %s: %v", userID, err)
		writeError(w, err)
		return nil, false
	}
	return list, true
}

func GetSummary(txns store.TransactionStore, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		anchor, _, err := parseMonth(r, now())
		if err != nil {
			writeError(w, err)
			return
		}
		list, ok := loadForUser(w, r, txns)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, summary.Summarize(list, anchor))
	}
}

func GetView(txns store.TransactionStore, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := now()
		anchor, _, err := parseMonth(r, current)
		if err != nil {
			writeError(w, err)
			return
		}

		filter := summary.Filter{Categories: queryList(r, "category")}
		for _, raw := range queryList(r, "paymentMode") {
			mode, err := models.ParsePaymentMode(raw)
			if err != nil {
				writeError(w, &models.ValidationError{Field: "paymentMode", Reason: "must be one of Cash, UPI, Card, Bank"})
				return
			}
			filter.PaymentModes = append(filter.PaymentModes, mode)
		}

		list, ok := loadForUser(w, r, txns)
		if !ok {
			return
		}
		groups := summary.Label(summary.ListView(list, anchor, filter), current)
		writeJSON(w, http.StatusOK, nonNil(groups))
	}
}

// breakdownFor applies the month filter only when the client asked for one.
func breakdownFor(w http.ResponseWriter, r *http.Request, txns store.TransactionStore, now Clock) ([]models.CategoryTotal, bool) {
	anchor, scoped, err := parseMonth(r, now())
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	list, ok := loadForUser(w, r, txns)
	if !ok {
		return nil, false
	}
	if scoped {
		list = summary.FilterMonth(list, anchor)
	}
	return summary.SortByTotal(summary.CategoryBreakdown(list)), true
}

func GetBreakdown(txns store.TransactionStore, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, ok := breakdownFor(w, r, txns, now)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, nonNil(totals))
	}
}

func GetBreakdownChart(txns store.TransactionStore, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, ok := breakdownFor(w, r, txns, now)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := report.BreakdownChart(&buf, totals); err != nil {
			if errors.Is(err, report.ErrNoData) {
				writeMsg(w, http.StatusNotFound, "No expenses to chart")
				return
			}
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func GetStatement(txns store.TransactionStore, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		anchor, _, err := parseMonth(r, now())
		if err != nil {
			writeError(w, err)
			return
		}
		list, ok := loadForUser(w, r, txns)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := report.Statement(&buf, list, anchor); err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}
