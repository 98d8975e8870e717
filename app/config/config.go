package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	HTTP     HTTPConfig
	Store    string `env:"STORE" envDefault:"postgres"`
	DB       PostgresConfig
	SQLite   SQLiteConfig
	Rules    RulesConfig
	QueueURL string `env:"QUEUE_URL"`
	Workers  int    `env:"WORKERS"`
}

type HTTPConfig struct {
	Addr        string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

type PostgresConfig struct {
	Username string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PWD"`
	URL      string `env:"POSTGRES_URL" envDefault:"localhost"`
	Port     string `env:"POSTGRES_PORT" envDefault:"5432"`
	Database string `env:"POSTGRES_DB" envDefault:"elostealo"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" envDefault:"elostealo.db"`
}

// RulesConfig locates the catalog version marker used by cmd/migrate.
type RulesConfig struct {
	VersionFile string `env:"MIGRATIONS_VERSION_FILE" envDefault:"migrations.yml"`
}

// DSN builds the lib/pq connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username,
		c.Password,
		c.URL,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.Store != StorePostgres && cfg.Store != StoreSQLite {
		return nil, fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreSQLite, cfg.Store)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("WORKERS must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}
