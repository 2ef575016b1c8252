package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Storage:      StorageConfig{Driver: StorageMemory},
		Notification: NotificationConfig{Transport: NotificationNone},
		Auth:         AuthConfig{JWTSecret: "secret"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "memory", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, wantErr: "unknown storage.driver"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = StoragePostgres }, wantErr: "postgres.dsn"},
		{name: "postgres", mutate: func(c *Config) {
			c.Storage.Driver = StoragePostgres
			c.Postgres.DSN = "postgres://localhost/ptm"
		}},
		{name: "nats without url", mutate: func(c *Config) { c.Storage.Driver = StorageNATS }, wantErr: "nats.url"},
		{name: "nats notifications without url", mutate: func(c *Config) { c.Notification.Transport = NotificationNATS }, wantErr: "nats.url"},
		{name: "http notifications without url", mutate: func(c *Config) { c.Notification.Transport = NotificationHTTP }, wantErr: "notification.url"},
		{name: "unknown transport", mutate: func(c *Config) { c.Notification.Transport = "smtp" }, wantErr: "unknown notification.transport"},
		{name: "missing jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "jwt_secret"},
		{name: "negative rate limit", mutate: func(c *Config) { c.Webhook.RateLimitPerMin = -1 }, wantErr: "rate_limit_per_min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNeedsNATS(t *testing.T) {
	cfg := validConfig()
	if cfg.NeedsNATS() {
		t.Error("memory + none should not need NATS")
	}
	cfg.Notification.Transport = NotificationNATS
	if !cfg.NeedsNATS() {
		t.Error("nats transport needs NATS")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" 10.0.0.1, ,140.82.112.0/20 ")
	if len(got) != 2 || got[0] != "10.0.0.1" || got[1] != "140.82.112.0/20" {
		t.Errorf("splitList() = %v", got)
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}
