package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"suggestwatch/internal/model"
	"suggestwatch/internal/watch"
)

// Slack truncates messages around this size; staying under it avoids
// partial rendering.
const slackMaxMessageLen = 4000

const slackMaxAttempts = 3

// SlackNotifier posts alerts to a Slack incoming webhook. Connection-level
// failures are retried with exponential backoff; HTTP error responses are
// not, since the webhook already received the request.
type SlackNotifier struct {
	httpClient *http.Client
	webhookURL string
	baseDelay  time.Duration
}

// NewSlackNotifier creates a notifier for the given incoming-webhook URL.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		httpClient: newHTTPClient(),
		webhookURL: webhookURL,
		baseDelay:  time.Second,
	}
}

func (s *SlackNotifier) Name() string { return "slack" }

// SendNewNegativeAlert posts one mrkdwn message listing the new negative
// suggestions for the brand.
func (s *SlackNotifier) SendNewNegativeAlert(ctx context.Context, brandName string, suggestions []model.NewNegative) error {
	payload, err := json.Marshal(map[string]string{
		"text": s.formatMessage(brandName, suggestions),
	})
	if err != nil {
		return fmt.Errorf("encoding slack payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < slackMaxAttempts; attempt++ {
		if attempt > 0 {
			delay := s.baseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("building slack request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		if err := checkStatus(resp); err != nil {
			return fmt.Errorf("slack webhook: %w", err)
		}
		return nil
	}

	return fmt.Errorf("sending slack message after %d attempts: %w", slackMaxAttempts, lastErr)
}

// formatMessage builds the mrkdwn body, truncated to Slack's message limit.
func (s *SlackNotifier) formatMessage(brandName string, suggestions []model.NewNegative) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":warning: *%s*: %d new negative suggestion(s)\n", brandName, len(suggestions))
	for _, sg := range suggestions {
		fmt.Fprintf(&b, "• %s\n", suggestionLine(sg))
	}

	msg := b.String()
	if len(msg) > slackMaxMessageLen {
		msg = msg[:slackMaxMessageLen-3] + "..."
	}
	return msg
}

var _ watch.Notifier = (*SlackNotifier)(nil)
