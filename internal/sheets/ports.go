package sheets

import (
	"context"
)

// Table names the logical worksheets the tracker reads and writes.
type Table string

const (
	Expenses Table = "Expenses"
	Income   Table = "Income"
	Budget   Table = "Budget"
)

// Row is one spreadsheet row with every cell rendered as text.
type Row []string

// Ports for outbound adapters.
type (
	RowAppender interface {
		// AppendRow appends one row after the last non-empty row of the table.
		AppendRow(ctx context.Context, table Table, cells []any) error
	}

	RowReader interface {
		// ReadAll returns every row of the table, including the header row.
		ReadAll(ctx context.Context, table Table) ([]Row, error)
	}

	Store interface {
		RowAppender
		RowReader
	}
)
