package out

import (
	"context"
	"fmt"

	"mcad/internal/modules/roster/domain"
	rosterout "mcad/internal/modules/roster/port/out"
	"mcad/internal/platform/tablestore"
)

// TableRosterStore adapts the primary table of the record store to the
// roster port. Column positions are resolved from the header of the most
// recent full read, so a reload always refreshes the addressing.
type TableRosterStore struct {
	client  tablestore.Client
	table   string
	columns []string
}

func NewTableRosterStore(client tablestore.Client, table string) *TableRosterStore {
	return &TableRosterStore{client: client, table: table}
}

func (s *TableRosterStore) LoadAll(ctx context.Context) ([]domain.Mentee, error) {
	t, err := s.client.ListRows(ctx, s.table)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	s.columns = t.Columns
	mentees := make([]domain.Mentee, 0, len(t.Rows))
	for i, row := range t.Rows {
		mentees = append(mentees, domain.MenteeFromRow("", i, func(column string) string {
			idx := t.ColumnIndex(column)
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return row[idx]
		}))
	}
	return mentees, nil
}

func (s *TableRosterStore) columnIndex(ctx context.Context, column string) (int, error) {
	if len(s.columns) == 0 {
		t, err := s.client.ListRows(ctx, s.table)
		if err != nil {
			return -1, fmt.Errorf("resolve roster header: %w", err)
		}
		s.columns = t.Columns
	}
	for i, c := range s.columns {
		if c == column {
			return i, nil
		}
	}
	return -1, fmt.Errorf("roster table has no column %q", column)
}

func (s *TableRosterStore) SetCell(ctx context.Context, position int, column, value string) error {
	idx, err := s.columnIndex(ctx, column)
	if err != nil {
		return err
	}
	if err := s.client.UpdateCell(ctx, s.table, position, idx, value); err != nil {
		return fmt.Errorf("write %s: %w", column, err)
	}
	return nil
}

func (s *TableRosterStore) Append(ctx context.Context, mentee domain.Mentee) error {
	if _, err := s.columnIndex(ctx, domain.ColName); err != nil {
		return err
	}
	// Serialize in the remote table's own column order, not the canonical
	// one, in case the sheet was rearranged by hand.
	canonical := mentee.Row()
	values := make([]string, len(s.columns))
	for i, column := range s.columns {
		for j, name := range domain.PrimaryColumns {
			if name == column {
				values[i] = canonical[j]
				break
			}
		}
	}
	if err := s.client.AppendRow(ctx, s.table, values); err != nil {
		return fmt.Errorf("append mentee: %w", err)
	}
	return nil
}

func (s *TableRosterStore) Delete(ctx context.Context, position int) error {
	if err := s.client.DeleteRow(ctx, s.table, position); err != nil {
		return fmt.Errorf("delete mentee row: %w", err)
	}
	return nil
}

var _ rosterout.RosterStore = (*TableRosterStore)(nil)
