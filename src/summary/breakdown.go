package summary

import (
	"sort"

	"expense-tracker/src/models"
)

// CategoryBreakdown sums non-income amounts per category over the whole
// input. It applies no date filter; callers wanting one month pass
// FilterMonth's result. Order follows first appearance.
func CategoryBreakdown(txns []models.Transaction) []models.CategoryTotal {
	index := make(map[string]int)
	var out []models.CategoryTotal
	for _, t := range txns {
		if t.IsIncome() {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, models.CategoryTotal{Category: t.Category})
		}
		out[i].Total += t.Amount
	}
	return out
}

// SortByTotal orders a breakdown by total descending, then by category name.
func SortByTotal(totals []models.CategoryTotal) []models.CategoryTotal {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}
