package report

// Bar colors for the budget chart. Over-budget categories get the
// warning color so they are never visually indistinguishable from
// healthy ones.
const (
	WithinBudgetColor = "#2e7d32"
	OverBudgetColor   = "#c62828"
)

// BarChart is a render-ready table for a labeled bar chart.
type BarChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// BudgetChart renders remaining budget per category as chart data,
// coloring over-budget categories with the warning color.
func BudgetChart(lines []BudgetLine) BarChart {
	chart := BarChart{
		Labels: make([]string, 0, len(lines)),
		Values: make([]float64, 0, len(lines)),
		Colors: make([]string, 0, len(lines)),
	}
	for _, line := range lines {
		chart.Labels = append(chart.Labels, line.Category)
		chart.Values = append(chart.Values, line.Remaining.Amount())
		if line.OverBudget {
			chart.Colors = append(chart.Colors, OverBudgetColor)
		} else {
			chart.Colors = append(chart.Colors, WithinBudgetColor)
		}
	}
	return chart
}
