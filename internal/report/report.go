// Package report turns raw spreadsheet rows into the period-scoped
// tables the dashboard renders: category sums completed against the
// canonical category list, user sums, budget-vs-actual, and a recent
// transaction listing.
package report

import (
	"sort"

	"github.com/actaeon02/budget-tracker/internal/core"
	"github.com/actaeon02/budget-tracker/internal/sheets"
)

// Pipeline holds the canonical label sets aggregation output is
// completed against. A zero RecentN falls back to DefaultRecentN.
type Pipeline struct {
	Categories []string
	Users      []string
	RecentN    int
}

const DefaultRecentN = 10

type (
	CategoryTotal struct {
		Category string
		Spent    core.Money
	}

	UserTotal struct {
		User  string
		Spent core.Money
	}

	// BudgetLine joins one budget row against actual spend for the
	// period. Remaining is negative when the category is over budget.
	BudgetLine struct {
		Category    string
		Allocations []core.UserAllocation
		Total       core.Money
		Spent       core.Money
		Remaining   core.Money
		OverBudget  bool
	}

	Report struct {
		Period      core.AccountingPeriod
		ByCategory  []CategoryTotal
		ByUser      []UserTotal
		Budget      []BudgetLine
		Recent      []core.Transaction
		SpentTotal  core.Money
		IncomeTotal core.Money
		Balance     core.Money
		DroppedRows int
	}
)

func New(categories, users []string, recentN int) *Pipeline {
	if len(categories) == 0 {
		categories = core.DefaultCategories
	}
	if len(users) == 0 {
		users = core.DefaultUsers
	}
	if recentN <= 0 {
		recentN = DefaultRecentN
	}
	return &Pipeline{Categories: categories, Users: users, RecentN: recentN}
}

// Evaluate computes the dashboard report for today's accounting period.
// Malformed rows are dropped and counted, never fatal; an empty input
// yields a report with zero-filled tables.
func (p *Pipeline) Evaluate(today core.Date, expenseRows, incomeRows, budgetRows []sheets.Row) Report {
	period := core.CurrentPeriod(today)

	txs, droppedTx := CoerceTransactions(expenseRows)
	income, droppedInc := CoerceIncome(incomeRows)
	budget, droppedBud := CoerceBudget(budgetRows)

	inPeriod := FilterPeriod(txs, period)
	byCategory := p.SumByCategory(inPeriod)
	byUser := p.SumByUser(inPeriod)

	var spent core.Money
	for _, tx := range inPeriod {
		spent.Cents += tx.Amount.Cents
	}

	var incomeTotal core.Money
	for _, rec := range income {
		if period.Contains(rec.Date) {
			incomeTotal.Cents += rec.Amount.Cents
		}
	}

	return Report{
		Period:      period,
		ByCategory:  byCategory,
		ByUser:      byUser,
		Budget:      BudgetVsActual(budget, byCategory),
		Recent:      RecentTransactions(txs, p.RecentN),
		SpentTotal:  spent,
		IncomeTotal: incomeTotal,
		Balance:     core.Money{Cents: incomeTotal.Cents - spent.Cents},
		DroppedRows: droppedTx + droppedInc + droppedBud,
	}
}

// FilterPeriod retains transactions whose purchase date falls in the
// half-open period [start, end).
func FilterPeriod(txs []core.Transaction, period core.AccountingPeriod) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if period.Contains(tx.PurchaseDate) {
			out = append(out, tx)
		}
	}
	return out
}

// SumByCategory groups by category and completes the result against
// the canonical category list: every canonical category appears, zero
// spend included, and categories outside the list are excluded.
func (p *Pipeline) SumByCategory(txs []core.Transaction) []CategoryTotal {
	sums := make(map[string]int64, len(p.Categories))
	for _, tx := range txs {
		sums[tx.Category] += tx.Amount.Cents
	}
	out := make([]CategoryTotal, 0, len(p.Categories))
	for _, cat := range p.Categories {
		out = append(out, CategoryTotal{Category: cat, Spent: core.Money{Cents: sums[cat]}})
	}
	return out
}

// SumByUser groups by user, completes the result against the canonical
// user list (every canonical user appears, zero spend included) and
// sorts descending by spend. Ties keep first-encountered order, so
// zero-spend canonical users stay in list order. Users outside the
// canonical list are kept rather than dropped.
func (p *Pipeline) SumByUser(txs []core.Transaction) []UserTotal {
	sums := make(map[string]int64, len(p.Users))
	order := make([]string, 0, len(p.Users))
	for _, user := range p.Users {
		sums[user] = 0
		order = append(order, user)
	}
	for _, tx := range txs {
		if _, seen := sums[tx.User]; !seen {
			order = append(order, tx.User)
		}
		sums[tx.User] += tx.Amount.Cents
	}
	out := make([]UserTotal, 0, len(order))
	for _, user := range order {
		out = append(out, UserTotal{User: user, Spent: core.Money{Cents: sums[user]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Spent.Cents > out[j].Spent.Cents
	})
	return out
}

// BudgetVsActual left-joins the budget table against category spend.
// Categories without spend default to zero; a negative remaining marks
// the line over budget.
func BudgetVsActual(budget []core.BudgetRow, byCategory []CategoryTotal) []BudgetLine {
	spent := make(map[string]int64, len(byCategory))
	for _, ct := range byCategory {
		spent[ct.Category] = ct.Spent.Cents
	}
	out := make([]BudgetLine, 0, len(budget))
	for _, row := range budget {
		s := spent[row.Category]
		remaining := row.Total.Cents - s
		out = append(out, BudgetLine{
			Category:    row.Category,
			Allocations: row.Allocations,
			Total:       row.Total,
			Spent:       core.Money{Cents: s},
			Remaining:   core.Money{Cents: remaining},
			OverBudget:  remaining < 0,
		})
	}
	return out
}

// RecentTransactions sorts the full coerced set by recency, newest
// first, and takes the top n. The recording timestamp is the primary
// key so backdated purchases still surface as recent entries.
func RecentTransactions(txs []core.Transaction, n int) []core.Transaction {
	out := append([]core.Transaction(nil), txs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecencyKey().After(out[j].RecencyKey())
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
