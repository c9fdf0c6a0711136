package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"suggestwatch/internal/model"
	"suggestwatch/internal/watch"
)

// WebhookNotifier POSTs alert events as JSON to an arbitrary endpoint,
// for wiring into systems the built-in channels don't cover.
type WebhookNotifier struct {
	httpClient *http.Client
	url        string
	headers    map[string]string
}

// webhookEvent is the wire format of one alert delivery.
type webhookEvent struct {
	Event       string              `json:"event"`
	Brand       string              `json:"brand"`
	Suggestions []model.NewNegative `json:"suggestions"`
}

// NewWebhookNotifier creates a notifier for url. headers are added to
// every request, typically for authentication.
func NewWebhookNotifier(url string, headers map[string]string) *WebhookNotifier {
	return &WebhookNotifier{
		httpClient: newHTTPClient(),
		url:        url,
		headers:    headers,
	}
}

func (w *WebhookNotifier) Name() string { return "webhook" }

func (w *WebhookNotifier) SendNewNegativeAlert(ctx context.Context, brandName string, suggestions []model.NewNegative) error {
	payload, err := json.Marshal(webhookEvent{
		Event:       "new_negative_suggestions",
		Brand:       brandName,
		Suggestions: suggestions,
	})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook event: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("webhook endpoint: %w", err)
	}
	return nil
}

var _ watch.Notifier = (*WebhookNotifier)(nil)
