// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// EnvDevelopment は開発環境を表します。
	EnvDevelopment = "development"
	// EnvTest はテスト環境を表します。TEST_DATABASE_URL が使われます。
	EnvTest = "test"
	// EnvProduction は本番環境を表します。
	EnvProduction = "production"
)

// Config holds application configuration parsed from environment variables.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"blog_backend"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Port    string `env:"PORT" envDefault:"3003"`

	// Database
	DBDriver         string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabaseURL      string        `env:"DATABASE_URL" envDefault:"blogs.db"`
	TestDatabaseURL  string        `env:"TEST_DATABASE_URL" envDefault:"file::memory:"`
	RunMigrations    bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	DBConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"60s"`

	// Auth
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Redis (empty address disables the cache)
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// CORS (comma-separated, "*" allows any origin)
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	// .env が無い場合はシステムの環境変数のみを使用する
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot run safely.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.Env == EnvProduction && c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// DSN returns the database URL for the current environment.
func (c *Config) DSN() string {
	if c.Env == EnvTest {
		return c.TestDatabaseURL
	}
	return c.DatabaseURL
}

// CORSOrigins splits CORSAllowedOrigins into its entries.
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
