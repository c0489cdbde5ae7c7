package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mailgun  MailgunConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DSN    string `env:"DB_DSN" envDefault:"data/domains.db"`
}

// MailgunConfig holds the provider endpoint settings. API keys are per
// domain and live in the database, not here.
type MailgunConfig struct {
	BaseURL string        `env:"MAILGUN_BASE_URL" envDefault:"https://api.mailgun.net/v3"`
	Timeout time.Duration `env:"MAILGUN_TIMEOUT" envDefault:"30s"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
	File        string `env:"LOG_FILE"`
	MaxSizeMB   int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups  int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays  int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// CORSConfig holds cross-origin settings for the admin page's API calls.
type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
}

// Origins returns the allowed origins as a slice.
func (c *CORSConfig) Origins() []string {
	if c.AllowedOrigins == "" {
		return nil
	}
	origins := strings.Split(c.AllowedOrigins, ",")
	out := origins[:0]
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(&cfg.Server); err != nil {
		return nil, fmt.Errorf("parsing server config: %w", err)
	}
	if err := env.Parse(&cfg.Database); err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if err := env.Parse(&cfg.Mailgun); err != nil {
		return nil, fmt.Errorf("parsing mailgun config: %w", err)
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, fmt.Errorf("parsing log config: %w", err)
	}
	if err := env.Parse(&cfg.CORS); err != nil {
		return nil, fmt.Errorf("parsing cors config: %w", err)
	}

	return cfg, nil
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite3 or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	u, err := url.Parse(c.Mailgun.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("MAILGUN_BASE_URL must be an absolute URL, got %q", c.Mailgun.BaseURL)
	}
	if c.Mailgun.Timeout <= 0 {
		return fmt.Errorf("MAILGUN_TIMEOUT must be positive")
	}

	return nil
}
