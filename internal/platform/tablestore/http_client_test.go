package tablestore_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mcad/internal/platform/tablestore"
)

func TestHTTPClientRequests(t *testing.T) {
	t.Parallel()
	var gotAuth, gotPath, gotMethod string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
		}
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"columns": []string{"Name"},
				"rows":    [][]string{{"Ana"}},
			})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := tablestore.NewHTTPClient(server.URL, "tok-1")
	ctx := context.Background()

	table, err := client.ListRows(ctx, "roster")
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if gotAuth != "Bearer tok-1" || gotPath != "/tables/roster" {
		t.Fatalf("unexpected request: auth=%q path=%q", gotAuth, gotPath)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "Ana" {
		t.Fatalf("unexpected table: %+v", table)
	}

	if err := client.UpdateCell(ctx, "roster", 2, 4, "TRUE"); err != nil {
		t.Fatalf("update cell: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/tables/roster/cells" {
		t.Fatalf("unexpected cell write: %s %s", gotMethod, gotPath)
	}
	if gotBody["row"].(float64) != 2 || gotBody["value"].(string) != "TRUE" {
		t.Fatalf("unexpected cell body: %+v", gotBody)
	}

	if err := client.DeleteRow(ctx, "roster", 1); err != nil {
		t.Fatalf("delete row: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/tables/roster/rows/1" {
		t.Fatalf("unexpected delete: %s %s", gotMethod, gotPath)
	}
}

func TestHTTPClientSurfacesStatusErrors(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := tablestore.NewHTTPClient(server.URL, "")
	err := client.AppendRow(context.Background(), "roster", []string{"Ana"})
	if err == nil {
		t.Fatalf("expected quota error")
	}
	var status *tablestore.StatusError
	if !errors.As(err, &status) || status.Code != http.StatusTooManyRequests {
		t.Fatalf("want typed status error with code 429, got %v", err)
	}
}

func TestEnsureTableTreatsConflictAsExisting(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tables/roster":
			http.Error(w, "table exists", http.StatusConflict)
		default:
			http.Error(w, "broken", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := tablestore.NewHTTPClient(server.URL, "")
	if err := client.EnsureTable(context.Background(), "roster", []string{"Name"}); err != nil {
		t.Fatalf("conflict means the table already exists, got %v", err)
	}
	if err := client.EnsureTable(context.Background(), "history", []string{"Name"}); err == nil {
		t.Fatalf("server failure must still surface")
	}
}
