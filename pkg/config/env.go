// Env loader
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultDatabaseURL = "sqlite:///./local_database.db"

type Config struct {
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	Port            string        `env:"PORT" envDefault:"8080"`
	DatabaseURL     string        `env:"DATABASE_URL" envDefault:"sqlite:///./local_database.db"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig loads .env files for the current APP_ENV (missing files are
// ignored) and then parses the environment into a Config.
func LoadConfig() (*Config, error) {
	switch GetAppEnv() {
	case "production":
		_ = godotenv.Load(".env.production")
	default:
		_ = godotenv.Load(".env.development")
	}
	// godotenv never overrides variables that are already set, so the generic
	// file only fills what the env-specific one left out.
	_ = godotenv.Load(".env")

	return Parse()
}

// Parse reads the process environment without touching any .env file.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultDatabaseURL
	}
	return cfg, nil
}

func GetAppEnv() string {
	if value, exists := os.LookupEnv("APP_ENV"); exists {
		return value
	}
	return "development"
}
