package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for suggestwatch.
type Config struct {
	Settings      Settings      `toml:"settings"`
	Notifications Notifications `toml:"notifications"`
}

// Settings holds the collection and storage tunables.
type Settings struct {
	Database     string  `toml:"database"`      // SQLite file path
	RequestDelay float64 `toml:"request_delay"` // Seconds between requests per worker
	MaxWorkers   int     `toml:"max_workers"`   // Concurrent autocomplete requests
	UserAgent    string  `toml:"user_agent"`
}

// Notifications groups the alert channel configurations. A channel is only
// constructed when its Enabled flag is set.
type Notifications struct {
	Telegram TelegramConfig `toml:"telegram"`
	Slack    SlackConfig    `toml:"slack"`
	Webhook  WebhookConfig  `toml:"webhook"`
}

// TelegramConfig holds Telegram bot API settings. BotToken and ChatID
// support ${VAR} environment expansion so secrets stay out of the file.
type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

// SlackConfig holds Slack incoming-webhook settings. WebhookURL supports
// ${VAR} environment expansion.
type SlackConfig struct {
	Enabled    bool   `toml:"enabled"`
	WebhookURL string `toml:"webhook_url"`
}

// WebhookConfig holds generic HTTP webhook settings. URL and header values
// support ${VAR} environment expansion.
type WebhookConfig struct {
	Enabled bool              `toml:"enabled"`
	URL     string            `toml:"url"`
	Headers map[string]string `toml:"headers"`
}

// NewConfig creates a Config with default settings and the given database
// path. Notification channels start disabled.
func NewConfig(databasePath string) *Config {
	return &Config{
		Settings: Settings{
			Database:     databasePath,
			RequestDelay: 1.0,
			MaxWorkers:   3,
			UserAgent:    "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0",
		},
	}
}

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} references with the environment value. Unset
// variables expand to the empty string, surfacing later in validation.
func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarRe.FindStringSubmatch(match)[1])
	})
}

// ExpandSecrets resolves ${VAR} references in every secret-bearing field.
// Called after decoding so the on-disk file never holds raw secrets.
func (c *Config) ExpandSecrets() {
	c.Notifications.Telegram.BotToken = expandEnv(c.Notifications.Telegram.BotToken)
	c.Notifications.Telegram.ChatID = expandEnv(c.Notifications.Telegram.ChatID)
	c.Notifications.Slack.WebhookURL = expandEnv(c.Notifications.Slack.WebhookURL)
	c.Notifications.Webhook.URL = expandEnv(c.Notifications.Webhook.URL)
	for k, v := range c.Notifications.Webhook.Headers {
		c.Notifications.Webhook.Headers[k] = expandEnv(v)
	}
}

// Validate returns a list of problems with the configuration. An empty list
// means the config is usable.
func (c *Config) Validate() []string {
	var problems []string

	if c.Settings.Database == "" {
		problems = append(problems, "settings.database is required")
	}
	if c.Settings.RequestDelay < 0 {
		problems = append(problems, "settings.request_delay must not be negative")
	}
	if c.Settings.MaxWorkers < 1 {
		problems = append(problems, "settings.max_workers must be at least 1")
	}

	if c.Notifications.Telegram.Enabled {
		if c.Notifications.Telegram.BotToken == "" {
			problems = append(problems, "notifications.telegram.bot_token is required when telegram is enabled")
		}
		if c.Notifications.Telegram.ChatID == "" {
			problems = append(problems, "notifications.telegram.chat_id is required when telegram is enabled")
		}
	}
	if c.Notifications.Slack.Enabled && c.Notifications.Slack.WebhookURL == "" {
		problems = append(problems, "notifications.slack.webhook_url is required when slack is enabled")
	}
	if c.Notifications.Webhook.Enabled && c.Notifications.Webhook.URL == "" {
		problems = append(problems, "notifications.webhook.url is required when webhook is enabled")
	}

	return problems
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader and expands secrets.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ExpandSecrets()
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
