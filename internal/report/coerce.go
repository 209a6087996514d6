package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/actaeon02/budget-tracker/internal/core"
	"github.com/actaeon02/budget-tracker/internal/sheets"
)

// Accepted wire formats. The slash forms are canonical; the dash forms
// survive in rows written by earlier revisions of the tracker and are
// accepted on read only.
const (
	TimestampLayout       = "01/02/2006 15:04:05"
	LegacyTimestampLayout = "01-02-2006 15:04:05"
	DateLayout            = "1/2/2006"
	LegacyDateLayout      = "1-2-2006"
)

// Column order of the Expenses table.
const (
	expTimestamp = iota
	expUser
	expPurchaseDate
	expItem
	expAmount
	expCategory
	expPaymentMethod
	expColumns
)

// Column order of the Income table.
const (
	incTimestamp = iota
	incUser
	incDate
	incSource
	incDescription
	incAmount
	incColumns
)

// ParseDate parses a wire cell as a calendar date.
func ParseDate(s string) (core.Date, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, LegacyDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return core.DateOf(t), true
		}
	}
	return core.Date{}, false
}

// ParseTimestamp parses a wire cell as a recording timestamp. A missing
// or malformed timestamp is not an error; callers fall back to the
// purchase date for recency ordering.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampLayout, LegacyTimestampLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a wire cell as a positive monetary amount.
func ParseAmount(s string) (core.Money, bool) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, false
	}
	return core.Money{Cents: cents}, true
}

// parseAllocation parses a budget cell. Unlike transaction amounts,
// zero and blank allocations are valid.
func parseAllocation(s string) (core.Money, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Money{}, true
	}
	if m, ok := ParseAmount(s); ok {
		return m, true
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil && f == 0 {
		return core.Money{}, true
	}
	return core.Money{}, false
}

// isHeaderRow recognizes the header row so it is skipped rather than
// counted as a dropped row.
func isHeaderRow(row sheets.Row) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "Timestamp")
}

// CoerceTransactions converts raw Expenses rows into transactions.
// Rows whose amount or purchase date fails coercion are dropped and
// counted; the remaining rows are always processed.
func CoerceTransactions(rows []sheets.Row) (txs []core.Transaction, dropped int) {
	for _, row := range rows {
		if isHeaderRow(row) {
			continue
		}
		if len(row) < expColumns {
			dropped++
			continue
		}
		date, ok := ParseDate(row[expPurchaseDate])
		if !ok {
			dropped++
			continue
		}
		amount, ok := ParseAmount(row[expAmount])
		if !ok {
			dropped++
			continue
		}
		ts, _ := ParseTimestamp(row[expTimestamp])
		txs = append(txs, core.Transaction{
			Timestamp:     ts,
			User:          strings.TrimSpace(row[expUser]),
			PurchaseDate:  date,
			Item:          strings.TrimSpace(row[expItem]),
			Amount:        amount,
			Category:      strings.TrimSpace(row[expCategory]),
			PaymentMethod: core.PaymentMethod(strings.TrimSpace(row[expPaymentMethod])),
		})
	}
	return txs, dropped
}

// CoerceIncome converts raw Income rows, dropping and counting
// malformed ones.
func CoerceIncome(rows []sheets.Row) (recs []core.IncomeRecord, dropped int) {
	for _, row := range rows {
		if isHeaderRow(row) {
			continue
		}
		if len(row) < incColumns {
			dropped++
			continue
		}
		date, ok := ParseDate(row[incDate])
		if !ok {
			dropped++
			continue
		}
		amount, ok := ParseAmount(row[incAmount])
		if !ok {
			dropped++
			continue
		}
		ts, _ := ParseTimestamp(row[incTimestamp])
		recs = append(recs, core.IncomeRecord{
			Timestamp:   ts,
			User:        strings.TrimSpace(row[incUser]),
			Date:        date,
			Source:      strings.TrimSpace(row[incSource]),
			Description: strings.TrimSpace(row[incDescription]),
			Amount:      amount,
		})
	}
	return recs, dropped
}

// CoerceBudget converts raw Budget rows. The header row names the
// per-user allocation columns: Category, <user>..., Total Budget.
func CoerceBudget(rows []sheets.Row) (budget []core.BudgetRow, dropped int) {
	if len(rows) == 0 {
		return nil, 0
	}
	header := rows[0]
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "Category") {
		// No recognizable header; nothing to join against.
		return nil, len(rows)
	}
	users := make([]string, 0, len(header)-2)
	for _, cell := range header[1 : len(header)-1] {
		users = append(users, strings.TrimSpace(cell))
	}

	for _, row := range rows[1:] {
		if len(row) < len(header) {
			dropped++
			continue
		}
		total, ok := parseAllocation(row[len(header)-1])
		if !ok {
			dropped++
			continue
		}
		allocs := make([]core.UserAllocation, 0, len(users))
		bad := false
		for i, user := range users {
			amt, ok := parseAllocation(row[1+i])
			if !ok {
				bad = true
				break
			}
			allocs = append(allocs, core.UserAllocation{User: user, Amount: amt})
		}
		if bad {
			dropped++
			continue
		}
		budget = append(budget, core.BudgetRow{
			Category:    strings.TrimSpace(row[0]),
			Allocations: allocs,
			Total:       total,
		})
	}
	return budget, dropped
}
