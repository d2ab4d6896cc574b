// Package summary derives the dashboard views from a flat list of
// transactions. Every function is pure and recomputes from its input.
package summary

import (
	"time"

	"expense-tracker/src/models"
)

// InMonth reports whether t falls in the calendar month of anchor, evaluated
// in anchor's location.
func InMonth(t, anchor time.Time) bool {
	local := t.In(anchor.Location())
	return local.Year() == anchor.Year() && local.Month() == anchor.Month()
}

// FilterMonth keeps the transactions dated in anchor's month.
func FilterMonth(txns []models.Transaction, anchor time.Time) []models.Transaction {
	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if InMonth(t.Date, anchor) {
			out = append(out, t)
		}
	}
	return out
}

// Summarize totals income and expense for anchor's month. Anything that is not
// income counts as expense.
func Summarize(txns []models.Transaction, anchor time.Time) models.Summary {
	var s models.Summary
	for _, t := range txns {
		if !InMonth(t.Date, anchor) {
			continue
		}
		if t.IsIncome() {
			s.Income += t.Amount
		} else {
			s.Expense += t.Amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}
