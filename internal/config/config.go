package config

import (
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/leadbrief/internal/model"
)

// Config is the root configuration for a leadbrief run. It is built once by
// Load and passed to each component.
type Config struct {
	Recipient          string
	Queries            []string
	IndustryPriorities []IndustryPriority // ordered; first match wins
	MaxNewPerDay       int
	Location           *time.Location
	Schedule           ScheduleConfig
	Store              StoreConfig
	Search             SearchConfig
	Notification       NotificationConfig
}

// IndustryPriority maps an industry keyword to a priority level.
type IndustryPriority struct {
	Keyword  string
	Priority model.Priority
}

// ScheduleConfig controls the daily trigger.
type ScheduleConfig struct {
	Hour int // local hour of day in Config.Location, 0-23
}

// StoreConfig selects the tabular store backend.
type StoreConfig struct {
	Type string `yaml:"type"` // "sqlite" or "csv"
	Path string `yaml:"path"`
}

// LockPath is the run lock file that sits next to the store.
func (s StoreConfig) LockPath() string {
	return s.Path + ".lock"
}

// SearchConfig selects the search provider.
type SearchConfig struct {
	Type string `yaml:"type"` // "none" or "file"
	File string `yaml:"file"` // required if type is "file"
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string         `yaml:"type"`        // "log", "email", "slack" or "telegram"
	WebhookURL string         `yaml:"webhook_url"` // required if type is "slack"
	Email      EmailConfig    `yaml:"email"`
	Telegram   TelegramConfig `yaml:"telegram"`
}

// EmailConfig holds SMTP settings. An empty Password is looked up in the OS keyring.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Addr returns host:port for the SMTP server.
func (e EmailConfig) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// TelegramConfig holds bot settings for the telegram notifier.
type TelegramConfig struct {
	Token    string `yaml:"token"`
	ChatID   int64  `yaml:"chat_id"`
	Endpoint string `yaml:"endpoint"` // optional self-hosted Bot API, e.g. http://localhost:8081/bot%s/%s
}

const (
	defaultHour         = 8
	defaultMaxNewPerDay = 5
	defaultStorePath    = "leads.db"
	defaultSMTPPort     = 587
)

// rawConfig is used for YAML unmarshaling (snake_case fields, priorities and
// timezone as strings).
type rawConfig struct {
	Recipient          string                `yaml:"recipient"`
	Queries            []string              `yaml:"queries"`
	IndustryPriorities []rawIndustryPriority `yaml:"industry_priorities"`
	MaxNewPerDay       *int                  `yaml:"max_new_per_day"`
	Timezone           string                `yaml:"timezone"`
	Schedule           rawScheduleConfig     `yaml:"schedule"`
	Store              StoreConfig           `yaml:"store"`
	Search             SearchConfig          `yaml:"search"`
	Notification       NotificationConfig    `yaml:"notification"`
}

type rawIndustryPriority struct {
	Keyword  string `yaml:"keyword"`
	Priority string `yaml:"priority"`
}

type rawScheduleConfig struct {
	Hour *int `yaml:"hour"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from YAML bytes. ${VAR} references are expanded from the environment.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	tz := raw.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("parse timezone %q: %w", tz, err)
	}

	priorities := make([]IndustryPriority, 0, len(raw.IndustryPriorities))
	for i, ip := range raw.IndustryPriorities {
		p, ok := model.ParsePriority(ip.Priority)
		if !ok {
			return nil, fmt.Errorf("parse industry_priorities[%d].priority %q: want High, Medium or Low", i, ip.Priority)
		}
		priorities = append(priorities, IndustryPriority{Keyword: ip.Keyword, Priority: p})
	}

	maxNew := defaultMaxNewPerDay
	if raw.MaxNewPerDay != nil {
		maxNew = *raw.MaxNewPerDay
	}

	hour := defaultHour
	if raw.Schedule.Hour != nil {
		hour = *raw.Schedule.Hour
	}

	st := raw.Store
	if st.Type == "" {
		st.Type = "sqlite"
	}
	if st.Path == "" {
		st.Path = defaultStorePath
	}

	search := raw.Search
	if search.Type == "" {
		search.Type = "none"
	}

	notif := raw.Notification
	if notif.Type == "" {
		notif.Type = "log"
	}
	if notif.Email.Port == 0 {
		notif.Email.Port = defaultSMTPPort
	}
	if notif.Email.From == "" {
		notif.Email.From = notif.Email.Username
	}

	cfg := &Config{
		Recipient:          strings.TrimSpace(raw.Recipient),
		Queries:            raw.Queries,
		IndustryPriorities: priorities,
		MaxNewPerDay:       maxNew,
		Location:           loc,
		Schedule:           ScheduleConfig{Hour: hour},
		Store:              st,
		Search:             search,
		Notification:       notif,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	if _, err := mail.ParseAddress(cfg.Recipient); err != nil {
		return fmt.Errorf("recipient %q is not a valid address: %w", cfg.Recipient, err)
	}
	if cfg.MaxNewPerDay < 0 {
		return fmt.Errorf("max_new_per_day must be >= 0, got %d", cfg.MaxNewPerDay)
	}
	if cfg.Schedule.Hour < 0 || cfg.Schedule.Hour > 23 {
		return fmt.Errorf("schedule.hour must be between 0 and 23, got %d", cfg.Schedule.Hour)
	}
	for i, q := range cfg.Queries {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("queries[%d] cannot be empty", i)
		}
	}
	for i, ip := range cfg.IndustryPriorities {
		if ip.Keyword == "" {
			return fmt.Errorf("industry_priorities[%d].keyword cannot be empty", i)
		}
	}

	switch cfg.Store.Type {
	case "sqlite", "csv":
	default:
		return fmt.Errorf("store.type must be \"sqlite\" or \"csv\", got %q", cfg.Store.Type)
	}

	switch cfg.Search.Type {
	case "none":
	case "file":
		if cfg.Search.File == "" {
			return fmt.Errorf("search.file is required when search.type is \"file\"")
		}
	default:
		return fmt.Errorf("search.type must be \"none\" or \"file\", got %q", cfg.Search.Type)
	}

	n := cfg.Notification
	switch n.Type {
	case "log":
	case "email":
		if n.Email.Host == "" {
			return fmt.Errorf("notification.email.host is required when type is \"email\"")
		}
		if n.Email.From == "" {
			return fmt.Errorf("notification.email.from (or username) is required when type is \"email\"")
		}
	case "slack":
		if n.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(n.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	case "telegram":
		if n.Telegram.Token == "" || n.Telegram.ChatID == 0 {
			return fmt.Errorf("notification.telegram.token and chat_id are required when type is \"telegram\"")
		}
	default:
		return fmt.Errorf("notification.type must be one of log, email, slack, telegram; got %q", n.Type)
	}

	return nil
}
