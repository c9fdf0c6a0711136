// Package notify delivers new-negative alerts over the configured channels.
// Each channel is an independent watch.Notifier; a delivery failure on one
// never affects the others.
package notify

import (
	"fmt"
	"net/http"
	"time"

	"suggestwatch/internal/config"
	"suggestwatch/internal/model"
	"suggestwatch/internal/watch"
)

const httpTimeout = 10 * time.Second

// FromConfig constructs one notifier per enabled channel. With every
// channel disabled the result is empty and scans simply skip alerting.
func FromConfig(cfg config.Notifications) []watch.Notifier {
	var notifiers []watch.Notifier

	if cfg.Telegram.Enabled {
		notifiers = append(notifiers, NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID))
	}
	if cfg.Slack.Enabled {
		notifiers = append(notifiers, NewSlackNotifier(cfg.Slack.WebhookURL))
	}
	if cfg.Webhook.Enabled {
		notifiers = append(notifiers, NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Headers))
	}

	return notifiers
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// checkStatus converts a non-2xx response into an error.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// suggestionLine renders one alert entry for plain-text style channels.
func suggestionLine(n model.NewNegative) string {
	if n.Category != "" {
		return fmt.Sprintf("%s (score %.2f, %s)", n.Text, n.Score, n.Category)
	}
	return fmt.Sprintf("%s (score %.2f)", n.Text, n.Score)
}
