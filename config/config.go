package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from the environment.
type Config struct {
	Env      string `env:"GALATIDE_ENV" envDefault:"development"`
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Site      SiteConfig      `envPrefix:"SITE_"`
	Database  DatabaseConfig  `envPrefix:"DB_"`
	Cache     CacheConfig     `envPrefix:"CACHE_"`
	Events    EventsConfig    `envPrefix:"EVENTS_"`
	Auth      AuthConfig      `envPrefix:"AUTH_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

type SiteConfig struct {
	URL             string `env:"URL" envDefault:"http://localhost:8080"`
	Name            string `env:"NAME" envDefault:"Galatide"`
	Description     string `env:"DESCRIPTION"`
	DefaultOGImage  string `env:"DEFAULT_OG_IMAGE"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver          string        `env:"DRIVER" envDefault:"postgres"`
	DSN             string        `env:"DSN"`
	Host            string        `env:"HOST"`
	Port            int           `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER"`
	Password        string        `env:"PASSWORD"`
	Name            string        `env:"NAME"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnectAttempts int           `env:"CONNECT_ATTEMPTS" envDefault:"5"`
	InitialBackoff  time.Duration `env:"INITIAL_BACKOFF" envDefault:"200ms"`
	MaxBackoff      time.Duration `env:"MAX_BACKOFF" envDefault:"5s"`
	RetryCooldown   time.Duration `env:"RETRY_COOLDOWN" envDefault:"30s"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE" envDefault:"true"`
}

// ConnectionString returns DSN, or builds a postgres DSN from the discrete fields.
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type CacheConfig struct {
	RedisURL string        `env:"REDIS_URL"`
	Prefix   string        `env:"PREFIX" envDefault:"galatide:"`
	TTL      time.Duration `env:"TTL" envDefault:"1h"`
}

type EventsConfig struct {
	AMQPURL    string `env:"AMQP_URL"`
	Exchange   string `env:"EXCHANGE" envDefault:"galatide.content"`
	RoutingKey string `env:"ROUTING_KEY" envDefault:"content"`
	Queue      string `env:"QUEUE"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"RPS" envDefault:"20"`
	Burst             int     `env:"BURST" envDefault:"40"`
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Site.URL = strings.TrimRight(cfg.Site.URL, "/")
	cfg.Site.DefaultLanguage = strings.ToLower(strings.TrimSpace(cfg.Site.DefaultLanguage))

	if cfg.Auth.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("AUTH_JWT_SECRET is required outside development")
		}
		cfg.Auth.JWTSecret = "development-secret-change-me"
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	return cfg, nil
}
