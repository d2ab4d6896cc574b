package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"expense-tracker/src/models"
	"expense-tracker/src/summary"
)

// Statement writes the month containing anchor as two text tables: the
// transactions newest first, then the month totals.
func Statement(w io.Writer, txns []models.Transaction, anchor time.Time) error {
	month := summary.FilterMonth(txns, anchor)
	summary.SortByDateDesc(month)

	if _, err := fmt.Fprintf(w, "Statement for %s\n\n", anchor.Format("January 2006")); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Type", "Category", "Mode", "Amount", "Note"})
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	for _, t := range month {
		amount := fmt.Sprintf("%.2f", t.Amount)
		if !t.IsIncome() {
			amount = "-" + amount
		}
		table.Append([]string{
			t.Date.In(anchor.Location()).Format("02 Jan 2006 15:04"),
			t.Type.String(),
			t.Category,
			string(t.PaymentMode),
			amount,
			strings.TrimSpace(t.Note),
		})
	}
	table.Render()

	s := summary.Summarize(txns, anchor)
	totals := tablewriter.NewWriter(w)
	totals.SetHeader([]string{"Income", "Expense", "Balance"})
	totals.Append([]string{
		fmt.Sprintf("%.2f", s.Income),
		fmt.Sprintf("%.2f", s.Expense),
		fmt.Sprintf("%.2f", s.Balance),
	})
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	totals.Render()
	return nil
}
