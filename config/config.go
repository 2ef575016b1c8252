package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageNATS     = "nats"
)

// Notification transports.
const (
	NotificationHTTP = "http"
	NotificationNATS = "nats"
	NotificationNone = "none"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	App        AppConfig

	// Storage
	Storage  StorageConfig
	Postgres PostgresConfig
	NATS     NATSConfig

	// Integrations
	GitHub       GitHubConfig
	Notification NotificationConfig
	Gemini       GeminiConfig

	Auth    AuthConfig
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// AppConfig describes how GitHub reaches this service.
type AppConfig struct {
	PublicURL   string // e.g. https://ptm.example.com, the webhook path is appended
	NgrokAPIURL string // local ngrok API used when PublicURL is empty
}

type StorageConfig struct {
	Driver string
}

type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type NATSConfig struct {
	URL                 string
	RegistrationBucket  string
	ReflectionBucket    string
	NotificationSubject string
}

type GitHubConfig struct {
	APIURL  string
	Timeout time.Duration
}

type NotificationConfig struct {
	Transport string
	URL       string
	APIKey    string
	Timeout   time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
	APIURL string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type WebhookConfig struct {
	AllowedIPs      []string
	RateLimitPerMin int
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
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.App.PublicURL = strings.TrimRight(viper.GetString("app.public_url"), "/")
	cfg.App.NgrokAPIURL = viper.GetString("app.ngrok_api_url")
	if publicURL := viper.GetString("public_url"); publicURL != "" {
		cfg.App.PublicURL = strings.TrimRight(publicURL, "/")
	}

	// Storage
	cfg.Storage.Driver = strings.ToLower(viper.GetString("storage.driver"))

	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	cfg.Postgres.MaxOpenConns = viper.GetInt("postgres.max_open_conns")
	cfg.Postgres.MaxIdleConns = viper.GetInt("postgres.max_idle_conns")
	cfg.Postgres.ConnMaxLifetime = viper.GetDuration("postgres.conn_max_lifetime")
	if dsn := viper.GetString("postgres_dsn"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	cfg.NATS.URL = viper.GetString("nats.url")
	cfg.NATS.RegistrationBucket = viper.GetString("nats.registration_bucket")
	cfg.NATS.ReflectionBucket = viper.GetString("nats.reflection_bucket")
	cfg.NATS.NotificationSubject = viper.GetString("nats.notification_subject")
	if natsURL := viper.GetString("nats_url"); natsURL != "" {
		cfg.NATS.URL = natsURL
	}

	// Integrations
	cfg.GitHub.APIURL = viper.GetString("github.api_url")
	cfg.GitHub.Timeout = viper.GetDuration("github.timeout")

	cfg.Notification.Transport = strings.ToLower(viper.GetString("notification.transport"))
	cfg.Notification.URL = viper.GetString("notification.url")
	cfg.Notification.APIKey = viper.GetString("notification.api_key")
	cfg.Notification.Timeout = viper.GetDuration("notification.timeout")

	cfg.Gemini.APIKey = viper.GetString("gemini.api_key")
	cfg.Gemini.Model = viper.GetString("gemini.model")
	cfg.Gemini.APIURL = viper.GetString("gemini.api_url")
	if geminiKey := viper.GetString("gemini_api_key"); geminiKey != "" {
		cfg.Gemini.APIKey = geminiKey
	}

	cfg.Auth.JWTSecret = viper.GetString("auth.jwt_secret")
	cfg.Auth.TokenTTL = viper.GetDuration("auth.token_ttl")
	if jwtSecret := viper.GetString("jwt_secret"); jwtSecret != "" {
		cfg.Auth.JWTSecret = jwtSecret
	}

	// Webhooks
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.AllowedIPs = splitList(viper.GetString("webhook.allowed_ips"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected drivers have what they need.
func (cfg *Config) Validate() error {
	switch cfg.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.Postgres.DSN == "" {
			return errors.New("postgres.dsn (POSTGRES_DSN) is required for the postgres storage driver")
		}
	case StorageNATS:
		if cfg.NATS.URL == "" {
			return errors.New("nats.url (NATS_URL) is required for the nats storage driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", cfg.Storage.Driver)
	}

	switch cfg.Notification.Transport {
	case NotificationNone:
	case NotificationHTTP:
		if cfg.Notification.URL == "" {
			return errors.New("notification.url is required for the http notification transport")
		}
	case NotificationNATS:
		if cfg.NATS.URL == "" {
			return errors.New("nats.url (NATS_URL) is required for the nats notification transport")
		}
	default:
		return fmt.Errorf("unknown notification.transport %q", cfg.Notification.Transport)
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret (JWT_SECRET) is required")
	}
	if cfg.Webhook.RateLimitPerMin < 0 {
		return errors.New("webhook.rate_limit_per_min must not be negative")
	}
	return nil
}

// NeedsNATS reports whether any component talks to NATS.
func (cfg *Config) NeedsNATS() bool {
	return cfg.Storage.Driver == StorageNATS || cfg.Notification.Transport == NotificationNATS
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("app.ngrok_api_url", "http://ngrok:4040")

	viper.SetDefault("storage.driver", StorageMemory)
	viper.SetDefault("postgres.max_open_conns", 10)
	viper.SetDefault("postgres.max_idle_conns", 5)
	viper.SetDefault("postgres.conn_max_lifetime", "30m")
	viper.SetDefault("nats.registration_bucket", "registrations")
	viper.SetDefault("nats.reflection_bucket", "reflections")
	viper.SetDefault("nats.notification_subject", "ptm.notifications")

	viper.SetDefault("github.timeout", "15s")
	viper.SetDefault("notification.transport", NotificationNone)
	viper.SetDefault("notification.timeout", "5s")

	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("webhook.rate_limit_per_min", 60)
}

// splitList parses a comma separated value. Viper does not split env strings into slices.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
