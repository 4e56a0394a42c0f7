package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Telegram delivery modes.
const (
	TelegramModePolling = "polling"
	TelegramModeWebhook = "webhook"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Bot specifics
	Telegram       TelegramConfig
	GoogleTimezone GoogleTimezoneConfig
	GoogleCalendar GoogleCalendarConfig
	Quote          QuoteConfig
	Conversation   ConversationConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int // per client IP, webhook route only
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken        string
	Mode            string // polling or webhook
	PollInterval    time.Duration
	WebhookURL      string
	WebhookSecret   string
	RateLimitPerMin int
}

type GoogleTimezoneConfig struct {
	APIKey string
}

type GoogleCalendarConfig struct {
	CredentialsPath string // OAuth client secret, installed-app format
	TokenPath       string
	AuthMode        string // cached or manual
	RedirectURL     string
	CalendarID      string
}

type QuoteConfig struct {
	URL string
}

type ConversationConfig struct {
	SessionTTL  time.Duration
	MaxSessions int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	if tgToken := viper.GetString("telegram_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	cfg.Telegram.Mode = strings.ToLower(viper.GetString("telegram.mode"))
	cfg.Telegram.PollInterval = viper.GetDuration("telegram.poll_interval")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = viper.GetString("telegram.webhook_secret")
	cfg.Telegram.RateLimitPerMin = viper.GetInt("telegram.rate_limit_per_min")

	// Google Time Zone API
	cfg.GoogleTimezone.APIKey = viper.GetString("google_timezone.api_key")
	if tzKey := viper.GetString("google_timezone_api_key"); tzKey != "" {
		cfg.GoogleTimezone.APIKey = tzKey
	}

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.AuthMode = strings.ToLower(viper.GetString("google_calendar.auth_mode"))
	cfg.GoogleCalendar.RedirectURL = viper.GetString("google_calendar.redirect_url")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")

	cfg.Quote.URL = viper.GetString("quote.url")

	cfg.Conversation.SessionTTL = viper.GetDuration("conversation.session_ttl")
	cfg.Conversation.MaxSessions = viper.GetInt("conversation.max_sessions")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 600)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("telegram.mode", TelegramModePolling)
	viper.SetDefault("telegram.poll_interval", "3s")
	viper.SetDefault("telegram.rate_limit_per_min", 30)

	viper.SetDefault("google_calendar.credentials_path", "credentials.json")
	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.auth_mode", "cached")
	viper.SetDefault("google_calendar.calendar_id", "primary")

	viper.SetDefault("quote.url", "http://localhost:8000/quote")

	viper.SetDefault("conversation.session_ttl", "30m")
	viper.SetDefault("conversation.max_sessions", 1000)
}

func (cfg *Config) validate() error {
	var errs []error
	if cfg.Telegram.BotToken == "" {
		errs = append(errs, errors.New("TELEGRAM_TOKEN is required"))
	}
	if cfg.GoogleTimezone.APIKey == "" {
		errs = append(errs, errors.New("GOOGLE_TIMEZONE_API_KEY is required"))
	}
	switch cfg.Telegram.Mode {
	case TelegramModePolling:
	case TelegramModeWebhook:
		if cfg.Telegram.WebhookURL == "" {
			errs = append(errs, errors.New("telegram.webhook_url is required in webhook mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown telegram.mode %q", cfg.Telegram.Mode))
	}
	return errors.Join(errs...)
}
