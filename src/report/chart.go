// Package report renders derived data for export: a category pie chart and a
// plain-text month statement.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"expense-tracker/src/models"
)

var ErrNoData = errors.New("nothing to render")

const (
	chartWidth  = 512
	chartHeight = 512
)

// BreakdownChart writes a PNG pie chart of category totals to w.
func BreakdownChart(w io.Writer, totals []models.CategoryTotal) error {
	var values []chart.Value
	for _, t := range totals {
		if t.Total <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.2f", t.Category, t.Total),
			Value: t.Total,
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
