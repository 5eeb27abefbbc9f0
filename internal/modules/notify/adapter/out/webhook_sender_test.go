package out_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mcad/internal/modules/notify/adapter/out"
	"mcad/internal/modules/notify/domain"
)

func TestWebhookSenderPostsTextPayload(t *testing.T) {
	t.Parallel()
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := out.NewWebhookSender()
	err := sender.Send(context.Background(), domain.Message{Endpoint: server.URL, Text: "nudge"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["text"] != "nudge" {
		t.Fatalf("payload = %v, want text field", got)
	}
}

func TestWebhookSenderReportsRejection(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	sender := out.NewWebhookSender()
	if err := sender.Send(context.Background(), domain.Message{Endpoint: server.URL, Text: "nudge"}); err == nil {
		t.Fatalf("non-2xx response must error")
	}
}
