package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"ENV", "HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT",
	"LOG_LEVEL", "LOG_FORMAT", "STORE_DRIVER", "SQLITE_PATH", "POSTGRES_DSN", "REDIS_URL",
	"REDIS_KEY", "STORE_SAVE_TIMEOUT", "BOARD_SEED", "DRAG_SAME_COLUMN",
}

// clearEnv unsets every key the reader looks at; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestEnvReader_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if cfg.Env != EnvLocal {
		t.Errorf("expected env %q, got %q", EnvLocal, cfg.Env)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected shutdown timeout 10s, got %v", cfg.HTTP.ShutdownTimeout)
	}
	if cfg.Store.Driver != DriverMemory {
		t.Errorf("expected memory driver, got %q", cfg.Store.Driver)
	}
	if !cfg.Board.Seed {
		t.Error("expected seeding to default on")
	}
	if cfg.Board.SameColumnDrops != "drop" {
		t.Errorf("expected drop policy, got %q", cfg.Board.SameColumnDrops)
	}
}

func TestEnvReader_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", EnvProd)
	t.Setenv("STORE_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "/tmp/board.db")
	t.Setenv("STORE_SAVE_TIMEOUT", "250ms")
	t.Setenv("BOARD_SEED", "false")
	t.Setenv("DRAG_SAME_COLUMN", "drop")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if cfg.Store.SQLitePath != "/tmp/board.db" {
		t.Errorf("unexpected sqlite path %q", cfg.Store.SQLitePath)
	}
	if cfg.Store.SaveTimeout != 250*time.Millisecond {
		t.Errorf("unexpected save timeout %v", cfg.Store.SaveTimeout)
	}
	if cfg.Board.Seed {
		t.Error("expected seeding off")
	}
}

func TestEnvReader_RejectsInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")

	if _, err := NewEnvReader().Read(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func validConfig() Config {
	return Config{
		Env:   EnvLocal,
		HTTP:  HTTPConfig{Addr: ":8080"},
		Log:   LogConfig{Level: "info", Format: "text"},
		Store: StoreConfig{Driver: DriverMemory},
		Board: BoardConfig{SameColumnDrops: "hover"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown env", mutate: func(c *Config) { c.Env = "staging" }, wantErr: "ENV"},
		{name: "empty addr", mutate: func(c *Config) { c.HTTP.Addr = "" }, wantErr: "HTTP_ADDR"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Driver = DriverPostgres }, wantErr: "POSTGRES_DSN"},
		{name: "redis without url", mutate: func(c *Config) { c.Store.Driver = DriverRedis }, wantErr: "REDIS_URL"},
		{name: "bad drag policy", mutate: func(c *Config) { c.Board.SameColumnDrops = "never" }, wantErr: "DRAG_SAME_COLUMN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}
