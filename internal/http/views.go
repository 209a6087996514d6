package http

import (
	"github.com/actaeon02/budget-tracker/internal/report"
)

// View structs render money pre-formatted with thousands separators.
type (
	reportView struct {
		PeriodStart string           `json:"period_start"`
		PeriodEnd   string           `json:"period_end"`
		ByCategory  []categoryView   `json:"by_category"`
		ByUser      []userView       `json:"by_user"`
		Budget      []budgetLineView `json:"budget"`
		Recent      []recentView     `json:"recent"`
		SpentTotal  string           `json:"spent_total"`
		IncomeTotal string           `json:"income_total"`
		Balance     string           `json:"balance"`
		DroppedRows int              `json:"dropped_rows"`
	}

	categoryView struct {
		Category string `json:"category"`
		Spent    string `json:"spent"`
	}

	userView struct {
		User  string `json:"user"`
		Spent string `json:"spent"`
	}

	budgetLineView struct {
		Category    string            `json:"category"`
		Allocations map[string]string `json:"allocations"`
		Total       string            `json:"total"`
		Spent       string            `json:"spent"`
		Remaining   string            `json:"remaining"`
		OverBudget  bool              `json:"over_budget"`
	}

	recentView struct {
		Timestamp     string `json:"timestamp,omitempty"`
		User          string `json:"user"`
		PurchaseDate  string `json:"purchase_date"`
		Item          string `json:"item"`
		Amount        string `json:"amount"`
		Category      string `json:"category"`
		PaymentMethod string `json:"payment_method"`
	}
)

const isoDate = "2006-01-02"

func buildReportView(rep report.Report) reportView {
	view := reportView{
		PeriodStart: rep.Period.Start.Format(isoDate),
		PeriodEnd:   rep.Period.End.Format(isoDate),
		ByCategory:  make([]categoryView, 0, len(rep.ByCategory)),
		ByUser:      make([]userView, 0, len(rep.ByUser)),
		Budget:      make([]budgetLineView, 0, len(rep.Budget)),
		Recent:      make([]recentView, 0, len(rep.Recent)),
		SpentTotal:  rep.SpentTotal.Format(),
		IncomeTotal: rep.IncomeTotal.Format(),
		Balance:     rep.Balance.Format(),
		DroppedRows: rep.DroppedRows,
	}

	for _, ct := range rep.ByCategory {
		view.ByCategory = append(view.ByCategory, categoryView{Category: ct.Category, Spent: ct.Spent.Format()})
	}
	for _, ut := range rep.ByUser {
		view.ByUser = append(view.ByUser, userView{User: ut.User, Spent: ut.Spent.Format()})
	}
	for _, line := range rep.Budget {
		allocs := make(map[string]string, len(line.Allocations))
		for _, a := range line.Allocations {
			allocs[a.User] = a.Amount.Format()
		}
		view.Budget = append(view.Budget, budgetLineView{
			Category:    line.Category,
			Allocations: allocs,
			Total:       line.Total.Format(),
			Spent:       line.Spent.Format(),
			Remaining:   line.Remaining.Format(),
			OverBudget:  line.OverBudget,
		})
	}
	for _, tx := range rep.Recent {
		rv := recentView{
			User:          tx.User,
			PurchaseDate:  tx.PurchaseDate.Format(isoDate),
			Item:          tx.Item,
			Amount:        tx.Amount.Format(),
			Category:      tx.Category,
			PaymentMethod: string(tx.PaymentMethod),
		}
		if !tx.Timestamp.IsZero() {
			rv.Timestamp = tx.Timestamp.Format(report.TimestampLayout)
		}
		view.Recent = append(view.Recent, rv)
	}
	return view
}

func buildChartView(rep report.Report) report.BarChart {
	return report.BudgetChart(rep.Budget)
}
