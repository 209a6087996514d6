package core

import "testing"

func TestCurrentPeriod_AnchorDayRollsForward(t *testing.T) {
	// On the 28th the period starts today, not a month ago.
	today := NewDate(2024, 3, 28)
	p := CurrentPeriod(today)
	if !p.Start.Equal(today.Time) {
		t.Fatalf("start = %v, want %v", p.Start, today)
	}
	if !p.End.Equal(NewDate(2024, 4, 28).Time) {
		t.Fatalf("end = %v, want 2024-04-28", p.End)
	}
}

func TestCurrentPeriod_BeforeAnchor(t *testing.T) {
	tests := []struct {
		name      string
		today     Date
		wantStart Date
		wantEnd   Date
	}{
		{
			name:      "mid March",
			today:     NewDate(2024, 3, 15),
			wantStart: NewDate(2024, 2, 28),
			wantEnd:   NewDate(2024, 3, 28),
		},
		{
			name:      "first of January crosses year boundary",
			today:     NewDate(2024, 1, 1),
			wantStart: NewDate(2023, 12, 28),
			wantEnd:   NewDate(2024, 1, 28),
		},
		{
			name:      "day 27 still belongs to previous period",
			today:     NewDate(2024, 3, 27),
			wantStart: NewDate(2024, 2, 28),
			wantEnd:   NewDate(2024, 3, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CurrentPeriod(tt.today)
			if !p.Start.Equal(tt.wantStart.Time) {
				t.Errorf("start = %v, want %v", p.Start, tt.wantStart)
			}
			if !p.End.Equal(tt.wantEnd.Time) {
				t.Errorf("end = %v, want %v", p.End, tt.wantEnd)
			}
		})
	}
}

func TestCurrentPeriod_AfterAnchorCrossesYear(t *testing.T) {
	p := CurrentPeriod(NewDate(2023, 12, 30))
	if !p.Start.Equal(NewDate(2023, 12, 28).Time) {
		t.Fatalf("start = %v, want 2023-12-28", p.Start)
	}
	if !p.End.Equal(NewDate(2024, 1, 28).Time) {
		t.Fatalf("end = %v, want 2024-01-28", p.End)
	}
}

func TestCurrentPeriod_SpansExactlyOneMonth(t *testing.T) {
	// Every day of a year must yield a period of exactly one calendar month.
	for d := NewDate(2024, 1, 1); d.Year() == 2024; d = (Date{Time: d.AddDate(0, 0, 1)}) {
		p := CurrentPeriod(d)
		if !p.Start.AddMonths(1).Equal(p.End.Time) {
			t.Fatalf("period %v..%v for %v does not span one month", p.Start, p.End, d)
		}
		if p.Start.Day() != AnchorDay || p.End.Day() != AnchorDay {
			t.Fatalf("period %v..%v for %v not anchored on day %d", p.Start, p.End, d, AnchorDay)
		}
		if !p.Contains(d) {
			t.Fatalf("period %v..%v does not contain %v", p.Start, p.End, d)
		}
	}
}

func TestAccountingPeriod_ContainsHalfOpen(t *testing.T) {
	p := CurrentPeriod(NewDate(2024, 3, 15))

	tests := []struct {
		name string
		d    Date
		want bool
	}{
		{"start is included", NewDate(2024, 2, 28), true},
		{"end is excluded", NewDate(2024, 3, 28), false},
		{"inside", NewDate(2024, 3, 1), true},
		{"before start", NewDate(2024, 2, 27), false},
		{"after end", NewDate(2024, 4, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.d); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}
