// Package tablestore defines the client contract for the remote record
// store: an ordered table of string cells with a header row. Row and column
// indexes are zero-based data coordinates; each client applies its own
// header offset at the wire boundary.
package tablestore

import "context"

// Table is one full table read: header-derived column names plus all data
// rows in remote order.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex resolves a header name to its position, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

type Client interface {
	ListRows(ctx context.Context, table string) (Table, error)
	UpdateCell(ctx context.Context, table string, row, col int, value string) error
	AppendRow(ctx context.Context, table string, values []string) error
	DeleteRow(ctx context.Context, table string, row int) error
	// EnsureTable creates the table with the given header when it does not
	// exist yet. Existing tables are left untouched.
	EnsureTable(ctx context.Context, table string, columns []string) error
}
