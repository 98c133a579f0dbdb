package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	LimiterMemory = "memory"
	LimiterRedis  = "redis"
)

type Config struct {
	AppHost string `env:"APP_HOST" env-default:"127.0.0.1"`
	AppPort string `env:"APP_PORT" env-default:"8080"`

	StoreDriver string `env:"STORE_DRIVER" env-default:"memory"`
	DatabaseDSN string `env:"DATABASE_DSN" env-default:"file::memory:?cache=shared"`
	SeedFile    string `env:"SEED_FILE" env-default:""`

	RateLimit        int    `env:"RATE_LIMIT_PER_MINUTE" env-default:"60"`
	RateLimitBackend string `env:"RATE_LIMIT_BACKEND" env-default:"memory"`
	RedisHost        string `env:"REDIS_HOST" env-default:"127.0.0.1"`
	RedisPort        string `env:"REDIS_PORT" env-default:"6379"`
	RedisKeyPrefix   string `env:"REDIS_KEY_PREFIX" env-default:"gestion:ratelimit"`

	ShutdownTimeoutSeconds int `env:"SHUTDOWN_TIMEOUT_SECONDS" env-default:"20"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"json"`

	PasswordHashCost int `env:"PASSWORD_HASH_COST" env-default:"10"`

	// Comma separated; empty allows any origin.
	CORSOrigins string `env:"CORS_ORIGINS" env-default:""`
}

// Load reads the configuration from the environment. Callers load .env
// beforehand when they want it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) AppURL() string {
	return net.JoinHostPort(c.AppHost, c.AppPort)
}

func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func (c *Config) validate() error {
	var errs []error

	if c.AppHost == "" || c.AppPort == "" {
		errs = append(errs, errors.New("APP_HOST and APP_PORT must not be empty"))
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StoreSQLite:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q", StoreMemory, StoreSQLite))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	switch c.RateLimitBackend {
	case LimiterMemory, LimiterRedis:
	default:
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BACKEND must be %q or %q", LimiterMemory, LimiterRedis))
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if c.PasswordHashCost < bcrypt.MinCost || c.PasswordHashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("PASSWORD_HASH_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, errors.New(`LOG_FORMAT must be "json" or "console"`))
	}

	return errors.Join(errs...)
}
