package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"suggestwatch/internal/config"
	"suggestwatch/internal/model"
)

var testNegatives = []model.NewNegative{
	{Text: "acme şikayet", Score: -0.6, Category: "complaint"},
	{Text: "acme dolandırıcı", Score: -0.9, Category: "fraud"},
}

func TestFromConfig(t *testing.T) {
	t.Run("all disabled yields none", func(t *testing.T) {
		notifiers := FromConfig(config.Notifications{})
		if len(notifiers) != 0 {
			t.Errorf("notifiers = %d, want 0", len(notifiers))
		}
	})

	t.Run("one per enabled channel", func(t *testing.T) {
		notifiers := FromConfig(config.Notifications{
			Telegram: config.TelegramConfig{Enabled: true, BotToken: "t", ChatID: "c"},
			Slack:    config.SlackConfig{Enabled: true, WebhookURL: "https://example.com"},
			Webhook:  config.WebhookConfig{Enabled: true, URL: "https://example.com"},
		})
		if len(notifiers) != 3 {
			t.Fatalf("notifiers = %d, want 3", len(notifiers))
		}

		names := make(map[string]bool)
		for _, n := range notifiers {
			names[n.Name()] = true
		}
		for _, want := range []string{"telegram", "slack", "webhook"} {
			if !names[want] {
				t.Errorf("missing notifier %q", want)
			}
		}
	})
}

func TestTelegramNotifier(t *testing.T) {
	t.Run("sends HTML message to chat", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &gotBody)
			w.Write([]byte(`{"ok": true}`))
		}))
		defer server.Close()

		n := NewTelegramNotifier("123:abc", "-100200")
		n.apiBase = server.URL

		if err := n.SendNewNegativeAlert(context.Background(), "acme", testNegatives); err != nil {
			t.Fatalf("SendNewNegativeAlert() error = %v", err)
		}

		if gotPath != "/bot123:abc/sendMessage" {
			t.Errorf("path = %q, want bot token in URL", gotPath)
		}
		if gotBody["chat_id"] != "-100200" {
			t.Errorf("chat_id = %q, want -100200", gotBody["chat_id"])
		}
		if gotBody["parse_mode"] != "HTML" {
			t.Errorf("parse_mode = %q, want HTML", gotBody["parse_mode"])
		}
		if !strings.Contains(gotBody["text"], "<b>acme</b>") {
			t.Errorf("text = %q, want bold brand name", gotBody["text"])
		}
		if !strings.Contains(gotBody["text"], "acme şikayet") {
			t.Errorf("text = %q, want suggestion listed", gotBody["text"])
		}
	})

	t.Run("escapes markup in suggestion text", func(t *testing.T) {
		n := NewTelegramNotifier("t", "c")
		msg := n.formatMessage("acme", []model.NewNegative{{Text: "acme <script>", Score: -0.3}})
		if strings.Contains(msg, "<script>") {
			t.Errorf("message = %q, want suggestion markup escaped", msg)
		}
	})

	t.Run("API error status surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		n := NewTelegramNotifier("bad", "c")
		n.apiBase = server.URL

		if err := n.SendNewNegativeAlert(context.Background(), "acme", testNegatives); err == nil {
			t.Error("expected error for 401 response")
		}
	})
}

func TestSlackNotifier(t *testing.T) {
	t.Run("sends mrkdwn message", func(t *testing.T) {
		var gotBody map[string]string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &gotBody)
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		n := NewSlackNotifier(server.URL)
		if err := n.SendNewNegativeAlert(context.Background(), "acme", testNegatives); err != nil {
			t.Fatalf("SendNewNegativeAlert() error = %v", err)
		}

		if !strings.Contains(gotBody["text"], "*acme*") {
			t.Errorf("text = %q, want bold brand name", gotBody["text"])
		}
		if !strings.Contains(gotBody["text"], "2 new negative") {
			t.Errorf("text = %q, want count", gotBody["text"])
		}
	})

	t.Run("retries connection failures", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts < 3 {
				// Kill the connection without a response.
				hj, ok := w.(http.Hijacker)
				if !ok {
					t.Fatal("server does not support hijacking")
				}
				conn, _, _ := hj.Hijack()
				conn.Close()
				return
			}
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		n := NewSlackNotifier(server.URL)
		n.baseDelay = time.Millisecond

		if err := n.SendNewNegativeAlert(context.Background(), "acme", testNegatives); err != nil {
			t.Fatalf("SendNewNegativeAlert() error = %v, want success on third attempt", err)
		}
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}
	})

	t.Run("does not retry HTTP error responses", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		n := NewSlackNotifier(server.URL)
		n.baseDelay = time.Millisecond

		if err := n.SendNewNegativeAlert(context.Background(), "acme", testNegatives); err == nil {
			t.Error("expected error for 400 response")
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1 (no retry on HTTP errors)", attempts)
		}
	})

	t.Run("truncates oversized messages", func(t *testing.T) {
		n := NewSlackNotifier("https://example.com")

		many := make([]model.NewNegative, 200)
		for i := range many {
			many[i] = model.NewNegative{Text: strings.Repeat("acme problem ", 5), Score: -0.5}
		}
		msg := n.formatMessage("acme", many)
		if len(msg) > slackMaxMessageLen {
			t.Errorf("message length = %d, want at most %d", len(msg), slackMaxMessageLen)
		}
		if !strings.HasSuffix(msg, "...") {
			t.Errorf("truncated message should end with ellipsis, got %q", msg[len(msg)-10:])
		}
	})
}

func TestWebhookNotifier(t *testing.T) {
	t.Run("posts event payload with headers", func(t *testing.T) {
		var gotEvent webhookEvent
		var gotAuth string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &gotEvent)
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		n := NewWebhookNotifier(server.URL, map[string]string{"Authorization": "Bearer tok"})
		if err := n.SendNewNegativeAlert(context.Background(), "acme", testNegatives); err != nil {
			t.Fatalf("SendNewNegativeAlert() error = %v", err)
		}

		if gotAuth != "Bearer tok" {
			t.Errorf("Authorization = %q, want configured header", gotAuth)
		}
		if gotEvent.Event != "new_negative_suggestions" || gotEvent.Brand != "acme" {
			t.Errorf("event = %+v, want typed payload", gotEvent)
		}
		if len(gotEvent.Suggestions) != 2 || gotEvent.Suggestions[1].Category != "fraud" {
			t.Errorf("suggestions = %+v, want full entries", gotEvent.Suggestions)
		}
	})

	t.Run("error status surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		n := NewWebhookNotifier(server.URL, nil)
		if err := n.SendNewNegativeAlert(context.Background(), "acme", testNegatives); err == nil {
			t.Error("expected error for 500 response")
		}
	})
}
