// Package charts renders dashboard images with go-chart.
package charts

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
)

// CategorySlice is one category's share of the month's expenses.
type CategorySlice struct {
	Category string
	Amount   float64
}

// RenderCategoryPie renders a PNG pie chart of expenses by category,
// largest slice first. Returns nil when there is nothing to draw.
func RenderCategoryPie(slices []CategorySlice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, nil
	}

	sorted := make([]CategorySlice, len(slices))
	copy(sorted, slices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	values := make([]chart.Value, 0, len(sorted))
	for _, s := range sorted {
		if s.Amount <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.2f)", s.Category, s.Amount),
			Value: s.Amount,
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
