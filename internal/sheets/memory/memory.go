package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	ports "github.com/actaeon02/budget-tracker/internal/sheets"
)

// Store is an in-memory table set used for local development and tests.
type Store struct {
	mu     sync.Mutex
	tables map[ports.Table][]ports.Row
}

var _ ports.Store = (*Store)(nil)

func New() *Store {
	return &Store{tables: map[ports.Table][]ports.Row{}}
}

// Seed replaces the contents of a table, header row included.
func (s *Store) Seed(table ports.Table, rows []ports.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]ports.Row, len(rows))
	for i, r := range rows {
		cp[i] = append(ports.Row(nil), r...)
	}
	s.tables[table] = cp
}

// AppendRow renders each cell as text and appends the row to the table.
func (s *Store) AppendRow(_ context.Context, table ports.Table, cells []any) error {
	row := make(ports.Row, len(cells))
	for i, c := range cells {
		row[i] = strings.TrimSpace(fmt.Sprint(c))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], row)
	return nil
}

// ReadAll returns a copy of every row in the table.
func (s *Store) ReadAll(_ context.Context, table ports.Table) ([]ports.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	out := make([]ports.Row, len(rows))
	for i, r := range rows {
		out[i] = append(ports.Row(nil), r...)
	}
	return out, nil
}

// Len reports the number of rows in a table.
func (s *Store) Len(table ports.Table) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table])
}
