package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store != StorePostgres {
		t.Fatalf("expected default store postgres, got %q", cfg.Store)
	}
	if cfg.DB.Database != "elostealo" {
		t.Fatalf("expected default database, got %q", cfg.DB.Database)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/games.db")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173,https://elostealo.app")
	t.Setenv("QUEUE_URL", "https://sqs.eu-west-1.amazonaws.com/123/finished")
	t.Setenv("WORKERS", "3")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.SQLite.Path != "/tmp/games.db" {
		t.Fatalf("unexpected store config: %q %q", cfg.Store, cfg.SQLite.Path)
	}
	want := HTTPConfig{Addr: ":9000", CORSOrigins: []string{"http://localhost:5173", "https://elostealo.app"}}
	if diff := cmp.Diff(want, cfg.HTTP); diff != "" {
		t.Fatalf("http config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Workers != 3 || !strings.HasSuffix(cfg.QueueURL, "/finished") {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE", "mongo")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected an error for an unknown store")
	}
}

func TestLoadConfigRejectsBadWorkers(t *testing.T) {
	t.Setenv("STORE", "sqlite")
	t.Setenv("WORKERS", "many")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected an error for a non-numeric WORKERS")
	}
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{Username: "u", Password: "p", URL: "db", Port: "5433", Database: "EloStealo", SSLMode: "disable"}
	if got := c.DSN(); got != "postgres://u:p@db:5433/EloStealo?sslmode=disable" {
		t.Fatalf("unexpected dsn %q", got)
	}
}
