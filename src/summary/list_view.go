package summary

import (
	"sort"
	"time"

	"expense-tracker/src/models"
)

// Filter narrows the list view. Empty sets match everything; non-empty sets
// use OR membership.
type Filter struct {
	Categories   []string
	PaymentModes []models.PaymentMode
}

func (f Filter) match(t models.Transaction) bool {
	if len(f.Categories) > 0 && !containsString(f.Categories, t.Category) {
		return false
	}
	if len(f.PaymentModes) > 0 && !containsMode(f.PaymentModes, t.PaymentMode) {
		return false
	}
	return true
}

// ListView returns anchor's month grouped by calendar day, newest day first.
// Inside a group transactions are ordered by date, newest first. Labels are
// left empty; see DayLabel.
func ListView(txns []models.Transaction, anchor time.Time, f Filter) []models.DateGroup {
	loc := anchor.Location()
	byDay := make(map[string]*models.DateGroup)
	for _, t := range txns {
		if !InMonth(t.Date, anchor) || !f.match(t) {
			continue
		}
		day := startOfDay(t.Date.In(loc))
		key := day.Format("2006-01-02")
		g, ok := byDay[key]
		if !ok {
			g = &models.DateGroup{Date: day}
			byDay[key] = g
		}
		g.Transactions = append(g.Transactions, t)
	}

	groups := make([]models.DateGroup, 0, len(byDay))
	for _, g := range byDay {
		SortByDateDesc(g.Transactions)
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
	return groups
}

// SortByDateDesc orders transactions newest first, keeping the input order
// for equal dates.
func SortByDateDesc(txns []models.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
}

// DayLabel renders a group date relative to now: "Today", "Yesterday" or
// "02 Jan 2006".
func DayLabel(day, now time.Time) string {
	now = now.In(day.Location())
	today := startOfDay(now)
	d := startOfDay(day)
	switch {
	case d.Equal(today):
		return "Today"
	case d.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return d.Format("02 Jan 2006")
	}
}

// Label fills in DayLabel for every group.
func Label(groups []models.DateGroup, now time.Time) []models.DateGroup {
	for i := range groups {
		groups[i].Label = DayLabel(groups[i].Date, now)
	}
	return groups
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsMode(set []models.PaymentMode, v models.PaymentMode) bool {
	for _, m := range set {
		if m == v {
			return true
		}
	}
	return false
}
