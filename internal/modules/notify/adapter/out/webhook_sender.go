package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mcad/internal/modules/notify/domain"
	notifyout "mcad/internal/modules/notify/port/out"
)

// WebhookSender posts the message text as JSON to the mentee's endpoint.
// This is the built-in delivery path used when no notifier plugin is
// configured.
type WebhookSender struct {
	httpClient *http.Client
}

func NewWebhookSender() notifyout.Sender {
	return &WebhookSender{httpClient: &http.Client{Timeout: 10 * time.Second}}
}

func (s *WebhookSender) Send(ctx context.Context, message domain.Message) error {
	payload, err := json.Marshal(map[string]string{"text": message.Text})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, message.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
