package tablestore_test

import (
	"context"
	"testing"

	"mcad/internal/platform/tablestore"
)

func TestFileClientLifecycle(t *testing.T) {
	t.Parallel()
	client := tablestore.NewFileClient(t.TempDir())
	ctx := context.Background()

	table, err := client.ListRows(ctx, "roster")
	if err != nil {
		t.Fatalf("list missing table: %v", err)
	}
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Fatalf("missing table should read empty, got %+v", table)
	}

	if err := client.EnsureTable(ctx, "roster", []string{"Name", "Link"}); err != nil {
		t.Fatalf("ensure table: %v", err)
	}
	if err := client.EnsureTable(ctx, "roster", []string{"Other"}); err != nil {
		t.Fatalf("ensure existing table: %v", err)
	}

	if err := client.AppendRow(ctx, "roster", []string{"Ana", "https://chat/ana"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := client.AppendRow(ctx, "roster", []string{"Ben"}); err != nil {
		t.Fatalf("append short row: %v", err)
	}

	table, err = client.ListRows(ctx, "roster")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if table.Columns[0] != "Name" || len(table.Rows) != 2 {
		t.Fatalf("unexpected table after appends: %+v", table)
	}
	if len(table.Rows[1]) != 2 || table.Rows[1][1] != "" {
		t.Fatalf("short row should be padded: %+v", table.Rows[1])
	}

	if err := client.UpdateCell(ctx, "roster", 1, 1, "https://chat/ben"); err != nil {
		t.Fatalf("update cell: %v", err)
	}
	table, _ = client.ListRows(ctx, "roster")
	if table.Rows[1][1] != "https://chat/ben" {
		t.Fatalf("cell update not persisted: %+v", table.Rows)
	}

	if err := client.UpdateCell(ctx, "roster", 5, 0, "x"); err == nil {
		t.Fatalf("expected error for out-of-range row")
	}

	if err := client.DeleteRow(ctx, "roster", 0); err != nil {
		t.Fatalf("delete row: %v", err)
	}
	table, _ = client.ListRows(ctx, "roster")
	if len(table.Rows) != 1 || table.Rows[0][0] != "Ben" {
		t.Fatalf("unexpected rows after delete: %+v", table.Rows)
	}
}

func TestColumnIndex(t *testing.T) {
	t.Parallel()
	table := tablestore.Table{Columns: []string{"A", "B"}}
	if table.ColumnIndex("B") != 1 {
		t.Fatalf("expected index 1 for B")
	}
	if table.ColumnIndex("Z") != -1 {
		t.Fatalf("expected -1 for unknown column")
	}
}
