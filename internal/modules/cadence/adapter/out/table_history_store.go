package out

import (
	"context"
	"fmt"

	"mcad/internal/modules/cadence/domain"
	cadenceout "mcad/internal/modules/cadence/port/out"
	"mcad/internal/platform/tablestore"
)

// TableHistoryStore adapts the history table of the record store to the
// history port. The table is append-only at this layer: no cell writes, no
// deletes.
type TableHistoryStore struct {
	client tablestore.Client
	table  string
}

func NewTableHistoryStore(client tablestore.Client, table string) *TableHistoryStore {
	return &TableHistoryStore{client: client, table: table}
}

func (s *TableHistoryStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	if err := s.client.AppendRow(ctx, s.table, entry.Row()); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

func (s *TableHistoryStore) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	t, err := s.client.ListRows(ctx, s.table)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	entries := make([]domain.HistoryEntry, 0, len(t.Rows))
	for _, row := range t.Rows {
		row := row
		entries = append(entries, domain.HistoryEntryFromRow(func(column string) string {
			idx := t.ColumnIndex(column)
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return row[idx]
		}))
	}
	return entries, nil
}

var _ cadenceout.HistoryStore = (*TableHistoryStore)(nil)
