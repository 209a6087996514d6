package core

// AnchorDay is the day of month the recurring accounting period starts
// on. Day 28 is the last day guaranteed to exist in every month, so
// period arithmetic never has to clamp.
const AnchorDay = 28

// AccountingPeriod is the half-open date range [Start, End) used for
// monthly budget comparison. It is recomputed on every evaluation and
// never persisted.
type AccountingPeriod struct {
	Start Date
	End   Date
}

// CurrentPeriod computes the accounting period that contains today.
//
// On or after the anchor day the period rolls forward: the 28th itself
// starts a new period running to the 28th of the next month. Before the
// anchor day, today falls in the period that started on the 28th of the
// previous month. The roll-forward on day 28 is deliberate policy; it
// decides which half-month is "current" on the anchor day itself.
func CurrentPeriod(today Date) AccountingPeriod {
	anchor := NewDate(today.Year(), int(today.Month()), AnchorDay)
	if today.Day() >= AnchorDay {
		return AccountingPeriod{Start: anchor, End: anchor.AddMonths(1)}
	}
	return AccountingPeriod{Start: anchor.AddMonths(-1), End: anchor}
}

// Contains reports whether d falls inside the period. The end boundary
// is exclusive: a transaction dated exactly End belongs to the next
// period.
func (p AccountingPeriod) Contains(d Date) bool {
	return !d.Before(p.Start.Time) && d.Before(p.End.Time)
}
