package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"suggestwatch/internal/model"
	"suggestwatch/internal/watch"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier sends alerts through the Telegram bot API.
type TelegramNotifier struct {
	httpClient *http.Client
	apiBase    string
	botToken   string
	chatID     string
}

// NewTelegramNotifier creates a notifier posting to the given chat.
func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		httpClient: newHTTPClient(),
		apiBase:    telegramAPIBase,
		botToken:   botToken,
		chatID:     chatID,
	}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// SendNewNegativeAlert posts one HTML-formatted message listing the new
// negative suggestions for the brand.
func (t *TelegramNotifier) SendNewNegativeAlert(ctx context.Context, brandName string, suggestions []model.NewNegative) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       t.formatMessage(brandName, suggestions),
		"parse_mode": "HTML",
	})
	if err != nil {
		return fmt.Errorf("encoding telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("telegram API: %w", err)
	}
	return nil
}

// formatMessage builds the HTML message body. Suggestion texts are
// user-controlled input and get escaped.
func (t *TelegramNotifier) formatMessage(brandName string, suggestions []model.NewNegative) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ <b>%s</b>: %d new negative suggestion(s)\n\n", html.EscapeString(brandName), len(suggestions))
	for _, s := range suggestions {
		fmt.Fprintf(&b, "• %s\n", html.EscapeString(suggestionLine(s)))
	}
	return b.String()
}

var _ watch.Notifier = (*TelegramNotifier)(nil)
