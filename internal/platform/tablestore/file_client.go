package tablestore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// FileClient keeps each table as a CSV file in the data directory, header
// row first. It exists so the tracker works without any network backend and
// as the store the tests exercise the full stack against.
type FileClient struct {
	dir string
}

func NewFileClient(dir string) *FileClient {
	return &FileClient{dir: dir}
}

func (c *FileClient) path(table string) string {
	return filepath.Join(c.dir, table+".csv")
}

func (c *FileClient) read(table string) ([][]string, error) {
	f, err := os.Open(c.path(table))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", table, err)
	}
	return records, nil
}

func (c *FileClient) write(table string, records [][]string) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create table dir: %w", err)
	}
	f, err := os.Create(c.path(table))
	if err != nil {
		return fmt.Errorf("write table %s: %w", table, err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("write table %s: %w", table, err)
	}
	return nil
}

func (c *FileClient) ListRows(_ context.Context, table string) (Table, error) {
	records, err := c.read(table)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{}, nil
	}
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, padTo(rec, len(records[0])))
	}
	return Table{Columns: records[0], Rows: rows}, nil
}

func (c *FileClient) UpdateCell(_ context.Context, table string, row, col int, value string) error {
	records, err := c.read(table)
	if err != nil {
		return err
	}
	// +1 skips the header record.
	target := row + 1
	if target < 1 || target >= len(records) {
		return fmt.Errorf("table %s has no row %d", table, row)
	}
	if col < 0 || col >= len(records[0]) {
		return fmt.Errorf("table %s has no column %d", table, col)
	}
	records[target] = padTo(records[target], len(records[0]))
	records[target][col] = value
	return c.write(table, records)
}

func (c *FileClient) AppendRow(_ context.Context, table string, values []string) error {
	records, err := c.read(table)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("table %s has no header", table)
	}
	return c.write(table, append(records, padTo(values, len(records[0]))))
}

func (c *FileClient) DeleteRow(_ context.Context, table string, row int) error {
	records, err := c.read(table)
	if err != nil {
		return err
	}
	target := row + 1
	if target < 1 || target >= len(records) {
		return fmt.Errorf("table %s has no row %d", table, row)
	}
	return c.write(table, append(records[:target], records[target+1:]...))
}

func (c *FileClient) EnsureTable(_ context.Context, table string, columns []string) error {
	if _, err := os.Stat(c.path(table)); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat table %s: %w", table, err)
	}
	return c.write(table, [][]string{columns})
}

func padTo(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
