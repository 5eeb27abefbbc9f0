package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultRequestTimeout = 15 * time.Second

// HTTPClient speaks a minimal REST dialect against a remote table service:
//
//	GET    {base}/tables/{table}            -> {"columns": [...], "rows": [[...]]}
//	PUT    {base}/tables/{table}            body {"columns": [...]}
//	POST   {base}/tables/{table}/cells      body {"row": r, "col": c, "value": v}
//	POST   {base}/tables/{table}/rows       body {"values": [...]}
//	DELETE {base}/tables/{table}/rows/{r}
//
// Writes are attempted exactly once; the store is slow and quota-limited,
// so retrying is the caller's decision, not the transport's.
type HTTPClient struct {
	base  string
	token string
	http  *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx response from the table service.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (c *HTTPClient) tablePath(table string) string {
	return "/tables/" + url.PathEscape(table)
}

func (c *HTTPClient) ListRows(ctx context.Context, table string) (Table, error) {
	var out struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	if err := c.do(ctx, http.MethodGet, c.tablePath(table), nil, &out); err != nil {
		return Table{}, err
	}
	return Table{Columns: out.Columns, Rows: out.Rows}, nil
}

func (c *HTTPClient) UpdateCell(ctx context.Context, table string, row, col int, value string) error {
	body := map[string]any{"row": row, "col": col, "value": value}
	return c.do(ctx, http.MethodPost, c.tablePath(table)+"/cells", body, nil)
}

func (c *HTTPClient) AppendRow(ctx context.Context, table string, values []string) error {
	body := map[string]any{"values": values}
	return c.do(ctx, http.MethodPost, c.tablePath(table)+"/rows", body, nil)
}

func (c *HTTPClient) DeleteRow(ctx context.Context, table string, row int) error {
	return c.do(ctx, http.MethodDelete, c.tablePath(table)+"/rows/"+strconv.Itoa(row), nil, nil)
}

func (c *HTTPClient) EnsureTable(ctx context.Context, table string, columns []string) error {
	err := c.do(ctx, http.MethodPut, c.tablePath(table), map[string]any{"columns": columns}, nil)
	var status *StatusError
	if errors.As(err, &status) && status.Code == http.StatusConflict {
		return nil
	}
	return err
}
