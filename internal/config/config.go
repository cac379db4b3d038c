// Package config reads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Env   string `env:"ENV" env-default:"local"`
	HTTP  HTTPConfig
	Log   LogConfig
	Store StoreConfig
	Board BoardConfig
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

type StoreConfig struct {
	Driver      string        `env:"STORE_DRIVER" env-default:"memory"`
	SQLitePath  string        `env:"SQLITE_PATH" env-default:"./data/taskboard.db"`
	PostgresDSN string        `env:"POSTGRES_DSN"`
	RedisURL    string        `env:"REDIS_URL"`
	RedisKey    string        `env:"REDIS_KEY" env-default:"taskboard:board"`
	SaveTimeout time.Duration `env:"STORE_SAVE_TIMEOUT" env-default:"5s"`
}

type BoardConfig struct {
	Seed            bool   `env:"BOARD_SEED" env-default:"true"`
	SameColumnDrops string `env:"DRAG_SAME_COLUMN" env-default:"drop"`
}

// Validate reports settings that would fail later at startup.
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		errs = append(errs, fmt.Errorf("ENV: unknown environment %q", c.Env))
	}

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR: must not be empty"))
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: expected text or json, got %q", c.Log.Format))
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH: required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN: required for the postgres driver"))
		}
	case DriverRedis:
		if c.Store.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL: required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unknown driver %q", c.Store.Driver))
	}

	switch c.Board.SameColumnDrops {
	case "hover", "drop":
	default:
		errs = append(errs, fmt.Errorf("DRAG_SAME_COLUMN: expected hover or drop, got %q", c.Board.SameColumnDrops))
	}

	return errors.Join(errs...)
}
